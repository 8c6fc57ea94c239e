/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/db"
	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/methods"
	"github.com/nethesis/app-registry/middleware"
	"github.com/nethesis/app-registry/mqtt"
	"github.com/nethesis/app-registry/socket"
	"github.com/nethesis/app-registry/store"
)

func main() {
	// init logger
	logs.Init("app-registry")

	// init configuration
	configuration.Init()

	// init database and store
	conn, err := db.New(configuration.Config)
	if err != nil {
		logs.Log("[CRITICAL][DB] " + err.Error())
		os.Exit(1)
	}
	defer conn.Close()
	registry := store.New(conn)

	// change feeds
	hub := socket.NewHub()
	notifiers := []methods.Notifier{hub}
	publisher := mqtt.New(configuration.Config)
	if publisher != nil {
		notifiers = append(notifiers, publisher)
		defer publisher.Close()
	}
	handler := methods.NewHandler(registry, notifiers...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go hub.Forward(ctx, publisher.Events())

	// init auth
	authMiddleware, err := middleware.InitJWT(registry)
	if err != nil {
		logs.Log("[CRITICAL][AUTH] " + err.Error())
		os.Exit(1)
	}

	// create router
	router := createRouter(handler, authMiddleware, hub)

	// certificate expiry scan
	c := cron.New()
	if _, err := c.AddFunc(configuration.Config.CertScanSchedule, func() {
		handler.ScanExpiringCertificates(context.Background())
	}); err != nil {
		logs.Log("[ERROR][CERTS] Invalid CERT_SCAN_SCHEDULE: " + err.Error())
	}
	c.Start()
	defer c.Stop()

	// run server
	srv := &http.Server{
		Addr:              configuration.Config.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logs.Log("[INFO][API] Listening on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Log("[CRITICAL][API] " + err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logs.Log("[INFO][API] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.Log("[ERROR][API] Shutdown: " + err.Error())
	}
}

func createRouter(handler *methods.Handler, authMiddleware *jwt.GinJWTMiddleware, hub *socket.Hub) *gin.Engine {
	// disable log to stdout when running in release mode
	if gin.Mode() == gin.ReleaseMode {
		gin.DefaultWriter = io.Discard
	}

	// init routers
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(
		gin.LoggerWithWriter(gin.DefaultWriter),
		gin.Recovery(),
		middleware.RequestID(),
	)

	// add default compression, the websocket upgrade stays uncompressed
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/ws"})))

	// cors configuration only in debug mode GIN_MODE=debug (default)
	if gin.Mode() == gin.DebugMode {
		// gin gonic cors conf
		corsConf := cors.DefaultConfig()
		corsConf.AllowHeaders = []string{"Authorization", "Content-Type", "Accept", middleware.RequestIDHeader}
		corsConf.ExposeHeaders = []string{middleware.RequestIDHeader}
		corsConf.AllowAllOrigins = true
		router.Use(cors.New(corsConf))
	}

	// health check (not authenticated)
	router.GET("/health", handler.Health(hub))

	// define api group
	api := router.Group("/api")
	api.POST("/login", authMiddleware.LoginHandler)
	api.POST("/logout", authMiddleware.LogoutHandler)

	api.Use(middleware.Identify(authMiddleware), middleware.RequireIdentity())
	{
		api.GET("/ws", hub.Handler)
		handler.Register(api)
	}

	// single page client and unknown API routes
	router.NoRoute(methods.Frontend(configuration.Config.StaticDir))

	return router
}
