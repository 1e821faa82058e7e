package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyuri/lvlinfo/internal/backup"
)

// isolate points every lookup location at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Backup.Enabled || cfg.Backup.Format != "gzip" || cfg.Backup.Dir != "" {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
	if cfg.Text.Format != "yaml" {
		t.Errorf("Text.Format = %q, want yaml", cfg.Text.Format)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `log:
  level: debug
backup:
  enabled: false
  format: xz
  dir: /var/backups/lvlinfo
text:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Backup.Enabled || cfg.Backup.Format != "xz" || cfg.Backup.Dir != "/var/backups/lvlinfo" {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
	if cfg.Text.Format != "json" {
		t.Errorf("Text.Format = %q, want json", cfg.Text.Format)
	}

	opts := cfg.BackupOptions()
	if opts.Format != backup.FormatXZ || opts.Dir != "/var/backups/lvlinfo" {
		t.Errorf("BackupOptions = %+v", opts)
	}
}

func TestLoadSearchPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	chdir(t, t.TempDir())

	dir := filepath.Join(xdg, "lvlinfo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lvlinfo.yaml"), []byte("backup:\n  format: lz4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backup.Format != "lz4" {
		t.Errorf("Backup.Format = %q, want lz4", cfg.Backup.Format)
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LVLINFO_LOG_LEVEL", "info")
	t.Setenv("LVLINFO_BACKUP_FORMAT", "zstd")
	t.Setenv("LVLINFO_BACKUP_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Backup.Format != "zstd" || cfg.Backup.Enabled {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
}

func TestLoadEnvFormatCase(t *testing.T) {
	isolate(t)
	t.Setenv("LVLINFO_LOG_FORMAT", "JSON")
	t.Setenv("LVLINFO_TEXT_FORMAT", "Yaml")
	t.Setenv("LVLINFO_BACKUP_FORMAT", "XZ")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Format != "json" || cfg.Text.Format != "yaml" || cfg.Backup.Format != "xz" {
		t.Errorf("formats = %q, %q, %q, want json, yaml, xz", cfg.Log.Format, cfg.Text.Format, cfg.Backup.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing explicit file succeeded")
	}

	tests := map[string]string{
		"backup format": "backup:\n  format: rar\n",
		"text format":   "text:\n  format: toml\n",
		"log format":    "log:\n  format: xml\n",
	}
	for name, content := range tests {
		path := filepath.Join(t.TempDir(), "lvlinfo.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: Load succeeded, want error", name)
		}
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
