package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				SQLiteDBPath: filepath.Join(t.TempDir(), "rugstore.db"),
				LogLevel:     "info",
			},
			wantErr: false,
		},
		{
			name: "empty database path",
			config: Config{
				SQLiteDBPath: "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				SQLiteDBPath: "./test.db",
				LogLevel:     "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RUGSTORE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.SQLiteDBPath != "./data/rugstore.db" {
		t.Fatalf("SQLiteDBPath = %q, want ./data/rugstore.db", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RUGSTORE_DB_PATH", "/tmp/custom.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.SQLiteDBPath != "/tmp/custom.db" {
		t.Fatalf("SQLiteDBPath = %q, want /tmp/custom.db", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
