/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/models"
)

const writeTimeout = 5 * time.Second

// Message is the frame sent to browsers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one browser connection. gorilla allows a single concurrent writer.
type Client struct {
	Conn      *websocket.Conn
	User      string
	RequestID string
	writeMu   sync.Mutex
}

func (c *Client) send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.Conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub keeps the open change feed connections.
type Hub struct {
	connections map[*websocket.Conn]*Client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*websocket.Conn]*Client)}
}

// AddConnection adds a new connection to the hub
func (h *Hub) AddConnection(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[client.Conn] = client
}

// RemoveConnection removes a connection from the hub
func (h *Hub) RemoveConnection(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.connections, conn)
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

// Publish sends a registry event to every connected client.
func (h *Hub) Publish(event models.RegistryEvent) {
	h.Broadcast("registry/"+event.Entity, event)
}

// Broadcast sends a message to all connected clients without waiting for slow ones.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	payload, err := json.Marshal(Message{Type: messageType, Data: data})
	if err != nil {
		logs.Log(fmt.Sprintf("[ERROR][BROADCAST] Failed to marshal message: %v", err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, client := range h.connections {
		go func(client *Client) {
			if err := client.send(payload); err != nil {
				logs.Log(fmt.Sprintf("[WARN][BROADCAST] Failed to send message to %s: %v", client.User, err))
			}
		}(client)
	}
}

// Forward broadcasts events from another source, such as the broker, until ctx ends.
func (h *Hub) Forward(ctx context.Context, events <-chan models.RegistryEvent) {
	if events == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			h.Publish(event)
		}
	}
}
