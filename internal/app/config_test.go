package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `netbox:
  url: "https://netbox.example.com"
  token: "secret"
  timeout_second: 5
  page_size: 100
discovery:
  mode: circuit
  port: 9100
  custom_field: sd_labels
output:
  path: "/var/lib/prometheus/targets.json"
retry:
  attempts: 3
  backoff_seconds: 2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NetBox.URL != "https://netbox.example.com" || cfg.NetBox.PageSize != 100 {
		t.Fatalf("netbox section not decoded: %+v", cfg.NetBox)
	}
	if cfg.Discovery.Mode != "circuit" || cfg.Discovery.Port != 9100 || cfg.Discovery.CustomField != "sd_labels" {
		t.Fatalf("discovery section not decoded: %+v", cfg.Discovery)
	}
	if cfg.Retry.Attempts != 3 || cfg.Retry.BackoffSeconds != 2 {
		t.Fatalf("retry section not decoded: %+v", cfg.Retry)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Discovery.Port != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.Discovery.Port)
	}
	if cfg.Discovery.CustomField != DefaultCustomField {
		t.Fatalf("expected default custom field %q, got %q", DefaultCustomField, cfg.Discovery.CustomField)
	}
	if cfg.Discovery.Mode != DefaultMode {
		t.Fatalf("expected default mode %q, got %q", DefaultMode, cfg.Discovery.Mode)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{Discovery: Discovery{Mode: "vm", Port: 9100, CustomField: "sd_labels"}}
	cfg.ApplyDefaults()

	if cfg.Discovery.Mode != "vm" || cfg.Discovery.Port != 9100 || cfg.Discovery.CustomField != "sd_labels" {
		t.Fatalf("explicit values must survive defaulting: %+v", cfg.Discovery)
	}
}
