package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFirebase = "firebase"
	BackendPostgres = "postgres"
)

type HTTPConfig struct {
	Addr string
}

type StoreConfig struct {
	Backend string

	// Firebase Realtime Database REST endpoint, e.g.
	// https://myproject-default-rtdb.asia-southeast1.firebasedatabase.app
	FirebaseURL  string
	FirebaseAuth string

	// DATABASE_URL, used when Backend is "postgres".
	DatabaseURL string
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	HTTP        HTTPConfig
	Store       StoreConfig

	JikanBaseURL string
	NATSURL      string // optional; empty disables cache invalidation and events

	SnapshotTTLSeconds int
}

func Load() (AppConfig, error) {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := AppConfig{
		ServiceName: strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		Store: StoreConfig{
			Backend:      strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))),
			FirebaseURL:  strings.TrimSpace(os.Getenv("FIREBASE_DATABASE_URL")),
			FirebaseAuth: strings.TrimSpace(os.Getenv("FIREBASE_AUTH_TOKEN")),
			DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
		JikanBaseURL:       strings.TrimSpace(os.Getenv("JIKAN_BASE_URL")),
		NATSURL:            strings.TrimSpace(os.Getenv("NATS_URL")),
		SnapshotTTLSeconds: envInt("SNAPSHOT_TTL_SECONDS", 30),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "animestream"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendMemory
	}

	switch cfg.Store.Backend {
	case BackendMemory:
	case BackendFirebase:
		if cfg.Store.FirebaseURL == "" {
			return AppConfig{}, errors.New("FIREBASE_DATABASE_URL is required for the firebase backend")
		}
	case BackendPostgres:
		if cfg.Store.DatabaseURL == "" {
			return AppConfig{}, errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}

	return cfg, nil
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
