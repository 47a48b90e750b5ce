package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/glabrego/feeddash/internal/tui/platform"
)

const (
	defaultPiper      = "sfeed_content"
	defaultMarkRead   = "sfeed_markread read"
	defaultMarkUnread = "sfeed_markread unread"
)

// Config holds runtime settings for the dashboard.
type Config struct {
	Plumber    string `yaml:"plumber,omitempty"`
	Piper      string `yaml:"piper,omitempty"`
	Yanker     string `yaml:"yanker,omitempty"` // empty: system clipboard
	MarkRead   string `yaml:"mark_read,omitempty"`
	MarkUnread string `yaml:"mark_unread,omitempty"`
	URLFile    string `yaml:"url_file,omitempty"`
	Lazy       bool   `yaml:"lazy"`
	AutoCmd    string `yaml:"autocmd,omitempty"`
	LogPath    string `yaml:"log,omitempty"`
	Watch      bool   `yaml:"watch"`
	Mouse      bool   `yaml:"mouse"`
}

func Defaults(goos string) Config {
	return Config{
		Plumber:    platform.DefaultPlumber(goos),
		Piper:      defaultPiper,
		MarkRead:   defaultMarkRead,
		MarkUnread: defaultMarkUnread,
		Mouse:      true,
	}
}

// DefaultPath is the config file read when none is named.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "feeddash", "config.yaml")
}

// Load layers the defaults, the config file and the environment. An
// explicitly named file must exist; the default one is optional.
func Load(path string) (Config, error) {
	cfg := Defaults(runtime.GOOS)

	if path == "" {
		path = os.Getenv("FEEDDASH_CONFIG")
	}
	if path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return Config{}, err
		}
	} else if def := DefaultPath(); def != "" {
		if err := cfg.ApplyFile(def); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyFile overlays the settings present in a YAML file.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays the SFEED_* and FEEDDASH_* variables. A variable that
// is set but empty still overrides, so SFEED_YANKER= selects the
// clipboard.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			*dst = v == "1"
		}
	}

	str("SFEED_PLUMBER", &c.Plumber)
	str("SFEED_PIPER", &c.Piper)
	str("SFEED_YANKER", &c.Yanker)
	str("SFEED_MARK_READ", &c.MarkRead)
	str("SFEED_MARK_UNREAD", &c.MarkUnread)
	str("SFEED_URL_FILE", &c.URLFile)
	flag("SFEED_LAZYLOAD", &c.Lazy)
	str("SFEED_AUTOCMD", &c.AutoCmd)
	str("FEEDDASH_LOG", &c.LogPath)
	flag("FEEDDASH_WATCH", &c.Watch)
}

func (c Config) Validate() error {
	if c.Plumber == "" {
		return errors.New("SFEED_PLUMBER must not be empty")
	}
	if c.Piper == "" {
		return errors.New("SFEED_PIPER must not be empty")
	}
	if c.URLFile != "" && (c.MarkRead == "" || c.MarkUnread == "") {
		return fmt.Errorf("SFEED_MARK_READ and SFEED_MARK_UNREAD are required with SFEED_URL_FILE: %s", c.URLFile)
	}
	return nil
}
