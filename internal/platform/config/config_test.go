package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVICE_NAME", "LOG_LEVEL", "HTTP_ADDR", "STORE_BACKEND",
		"FIREBASE_DATABASE_URL", "FIREBASE_AUTH_TOKEN", "DATABASE_URL",
		"JIKAN_BASE_URL", "NATS_URL", "SNAPSHOT_TTL_SECONDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceName != "animestream" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.SnapshotTTLSeconds != 30 {
		t.Fatalf("expected default snapshot ttl, got %d", cfg.SnapshotTTLSeconds)
	}
}

func TestLoad_FirebaseRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "firebase")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for firebase backend without FIREBASE_DATABASE_URL")
	}

	t.Setenv("FIREBASE_DATABASE_URL", "https://example.firebasedatabase.app")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendFirebase {
		t.Fatalf("expected firebase backend, got %q", cfg.Store.Backend)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for postgres backend without DATABASE_URL")
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
