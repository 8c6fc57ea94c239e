/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package configuration

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nqd/flat"
)

type Configuration struct {
	ListenAddress string `json:"listen_address"`
	Secret        string `json:"secret"`
	StaticDir     string `json:"static_dir"`
	DefaultUser   string `json:"default_user"`
	RequireAuth   bool   `json:"require_auth"`

	DatabaseDriver   string `json:"database_driver"`
	DatabaseHost     string `json:"database_host"`
	DatabasePort     string `json:"database_port"`
	DatabaseUser     string `json:"database_user"`
	DatabasePassword string `json:"database_password"`
	DatabaseName     string `json:"database_name"`
	DatabasePath     string `json:"database_path"`
	DatabasePoolSize int    `json:"database_pool_size"`

	MQTTEnabled  bool   `json:"mqtt_enabled"`
	MQTTHost     string `json:"mqtt_host"`
	MQTTPort     string `json:"mqtt_port"`
	MQTTUsername string `json:"mqtt_username"`
	MQTTPassword string `json:"mqtt_password"`
	MQTTTopic    string `json:"mqtt_topic"`

	CertExpiryDays   int    `json:"cert_expiry_days"`
	CertScanSchedule string `json:"cert_scan_schedule"`
}

var Config = Configuration{}

// fileValues holds the flattened content of REGISTRY_CONFIG_FILE, keyed like env variables.
var fileValues = map[string]string{}

func Init() {
	// load optional config file, env always wins over it
	fileValues = map[string]string{}
	if path := os.Getenv("REGISTRY_CONFIG_FILE"); path != "" {
		values, err := LoadFile(path)
		if err != nil {
			os.Stderr.WriteString("REGISTRY_CONFIG_FILE ignored: " + err.Error() + "\n")
		} else {
			fileValues = values
		}
	}

	Config.ListenAddress = get("LISTEN_ADDRESS", "127.0.0.1:5000")

	// set jwt secret, generate a volatile one when missing
	Config.Secret = get("SECRET", "")
	if Config.Secret == "" {
		os.Stderr.WriteString("SECRET variable is empty, using a random secret: issued tokens will not survive a restart\n")
		Config.Secret = randomSecret()
	}

	Config.StaticDir = get("STATIC_DIR", "frontend/dist")
	Config.DefaultUser = get("DEFAULT_USER", "admin")
	Config.RequireAuth = getBool("REQUIRE_AUTH", false)

	// database
	Config.DatabaseDriver = get("DATABASE_DRIVER", "mysql")
	Config.DatabaseHost = get("DATABASE_HOST", "localhost")
	Config.DatabasePort = get("DATABASE_PORT", "3306")
	Config.DatabaseUser = get("DATABASE_USER", "root")
	Config.DatabasePassword = get("DATABASE_PASSWORD", "")
	Config.DatabaseName = get("DATABASE_NAME", "audit_db")
	Config.DatabasePath = get("DATABASE_PATH", "registry.db")
	Config.DatabasePoolSize = getInt("DATABASE_POOL_SIZE", 5)

	// mqtt is enabled only when a broker is configured
	Config.MQTTHost = get("MQTT_HOST", "")
	Config.MQTTPort = get("MQTT_PORT", "1883")
	Config.MQTTUsername = get("MQTT_USERNAME", "")
	Config.MQTTPassword = get("MQTT_PASSWORD", "")
	Config.MQTTTopic = strings.TrimSuffix(get("MQTT_TOPIC", "registry"), "/")
	Config.MQTTEnabled = Config.MQTTHost != ""

	// certificate expiry scan
	Config.CertExpiryDays = getInt("CERT_EXPIRY_DAYS", 30)
	Config.CertScanSchedule = get("CERT_SCAN_SCHEDULE", "@daily")
}

// LoadFile reads a JSON config file and flattens nested objects into
// env-style keys: {"database": {"host": "db"}} becomes DATABASE_HOST=db.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nested map[string]interface{}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("invalid json in %s: %w", path, err)
	}

	flattened, err := flat.Flatten(nested, &flat.Options{Delimiter: "_", Safe: true})
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(flattened))
	for key, value := range flattened {
		if value == nil {
			continue
		}
		values[strings.ToUpper(key)] = fmt.Sprint(value)
	}
	return values, nil
}

func get(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, ok := fileValues[key]; ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(get(key, strconv.Itoa(def)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(get(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "app-registry-insecure-secret"
	}
	return hex.EncodeToString(buf)
}
