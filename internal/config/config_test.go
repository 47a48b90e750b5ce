package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SFEED_PLUMBER", "SFEED_PIPER", "SFEED_YANKER", "SFEED_MARK_READ",
		"SFEED_MARK_UNREAD", "SFEED_URL_FILE", "SFEED_LAZYLOAD", "SFEED_AUTOCMD",
		"FEEDDASH_LOG", "FEEDDASH_WATCH", "FEEDDASH_CONFIG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults("darwin")
	if cfg.Plumber != "open" {
		t.Fatalf("unexpected darwin plumber: %s", cfg.Plumber)
	}
	cfg = Defaults("linux")
	if cfg.Plumber != "xdg-open" || cfg.Piper != "sfeed_content" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MarkRead != "sfeed_markread read" || cfg.MarkUnread != "sfeed_markread unread" {
		t.Fatalf("unexpected mark commands: %+v", cfg)
	}
	if !cfg.Mouse || cfg.Lazy || cfg.Yanker != "" {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Piper != defaultPiper {
		t.Fatalf("unexpected piper: %s", cfg.Piper)
	}
	if cfg.URLFile != "" {
		t.Fatalf("unexpected url file: %s", cfg.URLFile)
	}
}

func TestLoad_ReadsVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("SFEED_PLUMBER", "firefox")
	t.Setenv("SFEED_PIPER", "less")
	t.Setenv("SFEED_URL_FILE", "/tmp/urls")
	t.Setenv("SFEED_LAZYLOAD", "1")
	t.Setenv("SFEED_AUTOCMD", "2tj")
	t.Setenv("FEEDDASH_WATCH", "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Plumber != "firefox" || cfg.Piper != "less" || cfg.URLFile != "/tmp/urls" {
		t.Fatalf("unexpected commands: %+v", cfg)
	}
	if !cfg.Lazy || cfg.Watch {
		t.Fatalf("unexpected toggles: lazy=%v watch=%v", cfg.Lazy, cfg.Watch)
	}
	if cfg.AutoCmd != "2tj" {
		t.Fatalf("unexpected autocmd: %q", cfg.AutoCmd)
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plumber: from-file\npiper: file-piper\nmouse: false\nwatch: true\n")
	t.Setenv("SFEED_PIPER", "env-piper")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Plumber != "from-file" {
		t.Fatalf("file should override default plumber: %s", cfg.Plumber)
	}
	if cfg.Piper != "env-piper" {
		t.Fatalf("env should override file piper: %s", cfg.Piper)
	}
	if cfg.Mouse || !cfg.Watch {
		t.Fatalf("unexpected toggles from file: %+v", cfg)
	}
	if cfg.MarkRead != defaultMarkRead {
		t.Fatalf("keys missing from the file keep their default: %s", cfg.MarkRead)
	}
}

func TestLoad_ConfigFromEnvAndDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEEDDASH_CONFIG", writeConfig(t, "piper: named\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Piper != "named" {
		t.Fatalf("unexpected piper: %s", cfg.Piper)
	}

	clearEnv(t)
	dir := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(dir, "feeddash"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "feeddash", "config.yaml"), []byte("yanker: xclip\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Yanker != "xclip" {
		t.Fatalf("default config file not read: %+v", cfg)
	}
}

func TestLoad_MissingNamedFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing named config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "plumber: [unterminated\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv_EmptyYankerSelectsClipboard(t *testing.T) {
	cfg := Defaults("linux")
	cfg.Yanker = "xclip"
	cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "SFEED_YANKER" {
			return "", true
		}
		return "", false
	})
	if cfg.Yanker != "" {
		t.Fatalf("expected empty yanker, got %q", cfg.Yanker)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults("linux")
	cfg.Plumber = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty plumber")
	}

	cfg = Defaults("linux")
	cfg.Piper = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty piper")
	}

	cfg = Defaults("linux")
	cfg.URLFile = "urls"
	cfg.MarkRead = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for url file without mark command")
	}
}
