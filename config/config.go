// Package config exposes process-wide configuration read from the
// environment, with an optional .env file loaded at startup.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func init() {
	// A missing .env is fine, the environment wins either way.
	_ = godotenv.Load()
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("AGRISENSE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("AGRISENSE_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("AGRISENSE_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("AGRISENSE_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 5000
	}
	return port
}

// GetSecret returns the cookie-signing secret. Empty means the server
// generates a fresh one at startup and sessions do not survive restarts.
func GetSecret() string {
	return os.Getenv("AGRISENSE_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	age, err := strconv.Atoi(os.Getenv("AGRISENSE_SESSION_MAX_AGE"))
	if err != nil || age <= 0 {
		return 7 * 24 * 60
	}
	return age
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("AGRISENSE_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

// GetModelPath returns the location of the serialized classifier artifact.
func GetModelPath() string {
	modelPath := os.Getenv("AGRISENSE_MODEL")
	if modelPath == "" {
		modelPath = "trained_model.json"
	}
	return modelPath
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("AGRISENSE_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}
