/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/db"
	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/methods"
	"github.com/nethesis/app-registry/middleware"
	"github.com/nethesis/app-registry/models"
	"github.com/nethesis/app-registry/socket"
	"github.com/nethesis/app-registry/store"
)

type testServer struct {
	url  string
	conn *sql.DB
	hub  *socket.Hub
}

// startServer runs the full router on a fresh sqlite database with one user.
func startServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logs.InitWithWriter("registry-tests", io.Discard)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app registry</html>"), 0o600))

	configuration.Config = configuration.Configuration{
		Secret:         "main-test-secret",
		StaticDir:      dir,
		DefaultUser:    "admin",
		DatabaseDriver: db.DriverSQLite,
		DatabasePath:   filepath.Join(dir, "registry.db"),
		CertExpiryDays: 30,
	}

	conn, err := db.New(configuration.Config)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = conn.Exec(`INSERT INTO user_master (login_name, password_hash, user_name, role_name)
		VALUES ('alice', 'secret', 'Alice', 'Admin')`)
	require.NoError(t, err)

	registry := store.New(conn)
	hub := socket.NewHub()
	authMiddleware, err := middleware.InitJWT(registry)
	require.NoError(t, err)

	server := httptest.NewServer(createRouter(methods.NewHandler(registry, hub), authMiddleware, hub))
	t.Cleanup(server.Close)

	return &testServer{url: server.URL, conn: conn, hub: hub}
}

func (s *testServer) request(t *testing.T, method string, path string, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, s.url+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	resp := s.request(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alice", body.User.LoginName)
	return body.Token
}

func readJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLoginAndAuditedCreate(t *testing.T) {
	s := startServer(t)
	token := s.login(t)

	resp := s.request(t, http.MethodPost, "/api/servers", token, gin.H{
		"server_name": "web01", "server_local_ip": "10.0.0.5", "created_by": "someone-else",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var user string
	require.NoError(t, s.conn.QueryRow("SELECT log_user FROM log_hosting_server WHERE log_type = 'new'").Scan(&user))
	assert.Equal(t, "alice", user)
}

func TestLoginRejections(t *testing.T) {
	s := startServer(t)

	resp := s.request(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", readJSON(t, resp)["error"])

	resp = s.request(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequireAuthProtectsMutations(t *testing.T) {
	s := startServer(t)
	configuration.Config.RequireAuth = true
	defer func() { configuration.Config.RequireAuth = false }()

	resp := s.request(t, http.MethodPost, "/api/companies", "", gin.H{"company_name": "Acme"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.request(t, http.MethodGet, "/api/companies", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.request(t, http.MethodPost, "/api/companies", s.login(t), gin.H{"company_name": "Acme"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHealthAndFallbacks(t *testing.T) {
	s := startServer(t)

	resp := s.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readJSON(t, resp)["database"])

	resp = s.request(t, http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readJSON(t, resp)["error"], "not found")

	resp = s.request(t, http.MethodGet, "/applications/3", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "app registry")
}

func TestChangesReachWebsocketClients(t *testing.T) {
	s := startServer(t)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(s.url, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	require.Eventually(t, func() bool { return s.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp := s.request(t, http.MethodPost, "/api/owners-master", "", gin.H{"name": "Bob", "created_by": "carol"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type string               `json:"type"`
		Data models.RegistryEvent `json:"data"`
	}
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "registry/owners", msg.Type)
	assert.Equal(t, models.ActionNew, msg.Data.Action)
	assert.Equal(t, "carol", msg.Data.User)
}
