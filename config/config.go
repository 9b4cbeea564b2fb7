// Package config exposes process-wide configuration read from the environment.
// All values are resolved once per call and carry sane development defaults,
// except the token signing key which must be set explicitly outside debug mode.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// devTokenSecret is the insecure fallback signing key, accepted only in debug mode.
const devTokenSecret = "dev-insecure-token-secret"

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func IsDebug() bool {
	return os.Getenv("DEBUG") == "true"
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return port
}

func GetDBPath() string {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", GetName()+".db")
	}
	return dbPath
}

// GetTokenSecret returns the signing key for session tokens. Outside debug mode
// an empty TOKEN_SECRET is a startup error; callers must refuse to serve.
func GetTokenSecret() (string, bool) {
	secret := os.Getenv("TOKEN_SECRET")
	if secret != "" {
		return secret, true
	}
	if IsDebug() {
		return devTokenSecret, true
	}
	return "", false
}

// GetTokenTTL returns the session token lifetime. The 7 day default is long
// for a non-revocable token, so it is tunable via TOKEN_TTL.
func GetTokenTTL() time.Duration {
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 7 * 24 * time.Hour
}

func GetFrontendURL() string {
	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return origin
}

func GetUploadFolder() string {
	dir := os.Getenv("UPLOAD_FOLDER")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func GetLogFolder() string {
	return os.Getenv("LOG_FOLDER")
}
