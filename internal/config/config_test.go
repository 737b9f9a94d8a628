package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.HTTP.Port)
	}
	if cfg.Snapshot.Driver != "file" {
		t.Errorf("driver = %q, want file", cfg.Snapshot.Driver)
	}
}

func TestLoadSectionedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `# service config
http:
  port: 8080

data:
  dir: "/var/lib/restaurant"

snapshot:
  driver: postgres

database:
  host: db.internal
  port: 5433
  user: ops
  password: secret
  database: restaurant

rabbitmq:
  enabled: true
  host: mq.internal
  port: 5672
  user: guest
  password: guest
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Data.Dir != "/var/lib/restaurant" {
		t.Errorf("dir = %q", cfg.Data.Dir)
	}
	if cfg.Snapshot.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Snapshot.Driver)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.RabbitMQ.Enabled || cfg.RabbitMQ.Host != "mq.internal" {
		t.Errorf("rabbitmq = %+v", cfg.RabbitMQ)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  password: fromfile\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESTAURANT_DB_PASSWORD", "fromenv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Password != "fromenv" {
		t.Errorf("password = %q, want fromenv", cfg.Database.Password)
	}
}

func TestMalformedLinesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "http:\n  port: not-a-number\n  garbage\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("port = %d, want default 3000", cfg.HTTP.Port)
	}
}
