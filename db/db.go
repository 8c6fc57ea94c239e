/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/logs"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

var sqlOpenFunc = sql.Open

//go:embed schema_mysql.sql
var mysqlSchema string

//go:embed schema_sqlite.sql
var sqliteSchema string

// New opens the connection pool described by cfg, checks it and applies
// the embedded schema. The caller owns the returned pool.
func New(cfg configuration.Configuration) (*sql.DB, error) {
	driver := cfg.DatabaseDriver
	if driver == "" {
		driver = DriverMySQL
	}

	var dsn, schema string
	switch driver {
	case DriverMySQL:
		dsn = mysqlDSN(cfg)
		schema = mysqlSchema
	case DriverSQLite:
		dsn = sqliteDSN(cfg.DatabasePath)
		schema = sqliteSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		logs.Log("[CRITICAL][DB] Failed to open database connection: " + err.Error())
		return nil, err
	}

	// Configure connection pool
	if driver == DriverSQLite {
		// a single writer keeps sqlite away from "database is locked"
		conn.SetMaxOpenConns(1)
	} else {
		size := cfg.DatabasePoolSize
		if size <= 0 {
			size = 5
		}
		conn.SetMaxOpenConns(size)
		conn.SetMaxIdleConns(size)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		logs.Log("[CRITICAL][DB] Failed to ping database: " + err.Error())
		conn.Close()
		return nil, err
	}

	logs.Log("[INFO][DB] Database connection established (" + driver + ")")

	if err := applySchema(conn, schema); err != nil {
		logs.Log("[CRITICAL][DB] Failed to create schema: " + err.Error())
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// applySchema runs the embedded schema statement by statement, every
// statement in it is idempotent.
func applySchema(conn *sql.DB, schema string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range splitStatements(schema) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w (statement: %.60s)", err, stmt)
		}
	}

	logs.Log("[INFO][DB] Schema created/verified successfully")
	return nil
}

// splitStatements cuts a schema file on ';' line endings and drops comments.
func splitStatements(schema string) []string {
	var (
		statements []string
		current    strings.Builder
	)
	for _, line := range strings.Split(schema, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			statements = append(statements, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}

func mysqlDSN(cfg configuration.Configuration) string {
	mc := mysql.NewConfig()
	mc.User = cfg.DatabaseUser
	mc.Passwd = cfg.DatabasePassword
	mc.Net = "tcp"
	mc.Addr = cfg.DatabaseHost + ":" + cfg.DatabasePort
	mc.DBName = cfg.DatabaseName
	mc.ParseTime = true
	return mc.FormatDSN()
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "registry.db"
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

// HealthCheck performs a health check on the database connection.
func HealthCheck(ctx context.Context, conn *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return conn.PingContext(ctx)
}
