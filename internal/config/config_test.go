package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "node:\n  ipc_path: /tmp/geth.ipc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Node.ConnectTimeout != DefaultConnectTimeout {
		t.Errorf("connect timeout = %s, want %s", cfg.Node.ConnectTimeout, DefaultConnectTimeout)
	}
	if cfg.Wallet.UnlockDuration != DefaultUnlockDuration {
		t.Errorf("unlock duration = %d, want %d", cfg.Wallet.UnlockDuration, DefaultUnlockDuration)
	}
	if cfg.Peers.Fair != 3 || cfg.Peers.Good != 10 {
		t.Errorf("peer thresholds = %d/%d, want 3/10", cfg.Peers.Fair, cfg.Peers.Good)
	}
	if cfg.Watch.Interval != DefaultWatchInterval {
		t.Errorf("watch interval = %s, want %s", cfg.Watch.Interval, DefaultWatchInterval)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `node:
  ipc_path: /var/run/geth.ipc
  connect_timeout: 5s
wallet:
  unlock_duration: 60
peers:
  fair: 2
  good: 8
watch:
  interval: 30s
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Node.ConnectTimeout != 5*time.Second {
		t.Errorf("connect timeout = %s, want 5s", cfg.Node.ConnectTimeout)
	}
	if cfg.Wallet.UnlockDuration != 60 {
		t.Errorf("unlock duration = %d, want 60", cfg.Wallet.UnlockDuration)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_IPC_DIR", "/custom/dir")
	path := writeConfig(t, "node:\n  ipc_path: ${TEST_IPC_DIR}/geth.ipc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Node.IPCPath != "/custom/dir/geth.ipc" {
		t.Errorf("ipc path = %q, want %q", cfg.Node.IPCPath, "/custom/dir/geth.ipc")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing ipc path", "wallet:\n  unlock_duration: 60\n"},
		{"inverted peer thresholds", "node:\n  ipc_path: /tmp/geth.ipc\npeers:\n  fair: 10\n  good: 5\n"},
		{"bad log level", "node:\n  ipc_path: /tmp/geth.ipc\nlogging:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
