package config

import (
	"os"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	return tmpfile.Name()
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"

database:
  host: "testdb"
  password: "testpass"

auth:
  jwtSecret: "test-secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Database.Host != "testdb" {
		t.Errorf("Expected database host testdb, got %s", cfg.Database.Host)
	}

	if cfg.Generation.MaxTotalSeconds != 300 {
		t.Errorf("Expected default maxTotalSeconds 300, got %d", cfg.Generation.MaxTotalSeconds)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	// No database password
	path := writeConfig(t, `
auth:
  jwtSecret: "test-secret"
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error when database.password is missing")
	}

	// No JWT secret
	path = writeConfig(t, `
database:
  password: "testpass"
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error when auth.jwtSecret is missing")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
