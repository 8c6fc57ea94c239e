/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	t.Setenv("REGISTRY_CONFIG_FILE", "")
	t.Setenv("SECRET", "")
	t.Setenv("LISTEN_ADDRESS", "")
	t.Setenv("MQTT_HOST", "")

	Init()

	assert.Equal(t, "127.0.0.1:5000", Config.ListenAddress)
	assert.Equal(t, "mysql", Config.DatabaseDriver)
	assert.Equal(t, 5, Config.DatabasePoolSize)
	assert.Equal(t, "admin", Config.DefaultUser)
	assert.Equal(t, "frontend/dist", Config.StaticDir)
	assert.Equal(t, 30, Config.CertExpiryDays)
	assert.Equal(t, "@daily", Config.CertScanSchedule)
	assert.False(t, Config.MQTTEnabled)
	assert.False(t, Config.RequireAuth)
	assert.Len(t, Config.Secret, 64, "a random secret should be generated")
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("REGISTRY_CONFIG_FILE", "")
	t.Setenv("SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_POOL_SIZE", "12")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("MQTT_HOST", "broker.local")
	t.Setenv("MQTT_TOPIC", "apps/")

	Init()

	assert.Equal(t, "s3cret", Config.Secret)
	assert.Equal(t, "sqlite3", Config.DatabaseDriver)
	assert.Equal(t, 12, Config.DatabasePoolSize)
	assert.True(t, Config.RequireAuth)
	assert.True(t, Config.MQTTEnabled)
	assert.Equal(t, "apps", Config.MQTTTopic)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REGISTRY_CONFIG_FILE", "")
	t.Setenv("DATABASE_POOL_SIZE", "lots")
	t.Setenv("CERT_EXPIRY_DAYS", "-3")

	Init()

	assert.Equal(t, 5, Config.DatabasePoolSize)
	assert.Equal(t, 30, Config.CertExpiryDays)
}

func TestConfigFileIsFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	content := `{
		"database": {"host": "db.internal", "pool_size": 9, "name": "registry"},
		"mqtt": {"host": "mqtt.internal"},
		"default_user": "auditor"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("REGISTRY_CONFIG_FILE", path)
	t.Setenv("DATABASE_HOST", "")
	t.Setenv("DATABASE_POOL_SIZE", "")
	t.Setenv("MQTT_HOST", "")
	t.Setenv("DEFAULT_USER", "")
	t.Setenv("DATABASE_NAME", "from-env")

	Init()

	assert.Equal(t, "db.internal", Config.DatabaseHost)
	assert.Equal(t, 9, Config.DatabasePoolSize)
	assert.Equal(t, "auditor", Config.DefaultUser)
	assert.Equal(t, "from-env", Config.DatabaseName, "env must win over the file")
	assert.True(t, Config.MQTTEnabled)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))
	_, err = LoadFile(bad)
	assert.Error(t, err)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"cert":{"scan":{"schedule":"@hourly"}},"require_auth":true}`), 0600))
	values, err := LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "@hourly", values["CERT_SCAN_SCHEDULE"])
	assert.Equal(t, "true", values["REQUIRE_AUTH"])
}
