package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/friomar/dispatch/core/dispatch"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `store:
  path: "fleet.db"
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "dispatch"
  username: "user"
  password: "pass"
dispatch:
  chain_radius_km: 100
  reassign_policy: "supersede"
  page_size: 5
mirror:
  path: "viajes.csv"
  driver_column: 21
metrics:
  prom_enabled: true
  prom_addr: ":9100"
auto:
  enabled: true
  interval_minutes: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"store.path", cfg.Store.Path, "fleet.db"},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "dispatch"},
		{"chain_radius_km", cfg.Dispatch.ChainRadiusKm, 100},
		{"reassign_policy", cfg.Dispatch.ReassignPolicy, dispatch.PolicySupersede},
		{"page_size", cfg.Dispatch.PageSize, 5},
		{"mirror.path", cfg.Mirror.Path, "viajes.csv"},
		{"prom_enabled", cfg.Metrics.PromEnabled, true},
		{"prom_addr", cfg.Metrics.PromAddr, ":9100"},
		{"auto.enabled", cfg.Auto.Enabled, true},
		{"auto.interval_minutes", cfg.Auto.IntervalMinutes, 30},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Path != "dispatch.db" {
		t.Errorf("store default: %q", cfg.Store.Path)
	}
	if cfg.Dispatch.ChainRadiusKm != 150 || cfg.Dispatch.PageSize != 8 {
		t.Errorf("dispatch defaults: %+v", cfg.Dispatch)
	}
	if cfg.Dispatch.ReassignPolicy != dispatch.PolicyReject {
		t.Errorf("reassign policy default: %q", cfg.Dispatch.ReassignPolicy)
	}
	if cfg.Metrics.PromAddr != ":9090" {
		t.Errorf("prom addr default: %q", cfg.Metrics.PromAddr)
	}
	if cfg.Auto.IntervalMinutes != 15 {
		t.Errorf("auto interval default: %d", cfg.Auto.IntervalMinutes)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unsupported format error")
	}

	path = filepath.Join(dir, "bad.yaml")
	data := "dispatch:\n  reassign_policy: \"maybe\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected reassign policy validation error")
	}

	path = filepath.Join(dir, "influx.yaml")
	data = "metrics:\n  influx_enabled: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected influx validation error")
	}
}
