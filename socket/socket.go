/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package socket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/middleware"
	"github.com/nethesis/app-registry/models"
)

const pongWait = 60 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the request and keeps the connection registered until the
// browser goes away. The feed is one way, incoming frames are discarded.
func (h *Hub) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logs.Log("[ERROR][WS] WebSocket upgrade failed: " + err.Error())
		return
	}
	defer conn.Close()

	client := &Client{Conn: conn, User: c.GetString(models.ActingUserKey), RequestID: c.GetString(middleware.RequestIDKey)}
	h.AddConnection(client)
	defer h.RemoveConnection(conn)

	logs.Log(fmt.Sprintf("[INFO][WS] Client connected (user %q, %d open)", client.User, h.Count()))

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// keepalive
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pongWait / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				client.writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
				client.writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logs.Log("[WARNING][WS] Connection closed: " + err.Error())
			}
			return
		}
	}
}
