package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Load 只会执行一次，所以整个包只有这一个用例调用它
func TestLoad_FileDefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  path: test.db\napp:\n  currency: \"€\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KL_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.Database.Path != "test.db" || cfg.App.Currency != "€" {
		t.Errorf("file values not applied: %+v %+v", cfg.Database, cfg.App)
	}
	if cfg.Database.Driver != "sqlite" || cfg.App.PageSize != 20 || cfg.JWT.ExpireHours != 24 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from KL_SERVER_PORT", cfg.Server.Port)
	}
}
