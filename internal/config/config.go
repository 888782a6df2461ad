package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/secdigest/internal/fetch"
	"github.com/ppiankov/secdigest/internal/source"
)

const (
	DefaultConfigDir  = ".secdigest"
	DefaultConfigFile = "config.yaml"
	DefaultWorkers    = 1
	MaxWorkers        = 16
	DefaultFormat     = "terminal"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config holds the tunable behaviour of a digest run. The source list is
// built in and cannot be changed here.
type Config struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Digest DigestConfig `yaml:"digest"`
}

type FetchConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
	Workers   int      `yaml:"workers"`
}

type DigestConfig struct {
	RSSLimit    int      `yaml:"rss_limit"`
	CISALimit   int      `yaml:"cisa_limit"`
	Color       string   `yaml:"color"`
	Format      string   `yaml:"format"`
	TypingDelay Duration `yaml:"typing_delay"`
	Banner      *bool    `yaml:"banner"`
	Greeting    string   `yaml:"greeting"`
}

// ShowBanner reports whether the ASCII banner is printed. Defaults to true.
func (d DigestConfig) ShowBanner() bool {
	return d.Banner == nil || *d.Banner
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads the YAML config at path from fsys, applies defaults, and
// validates. A missing file is not an error.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path is required")
	}

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Fetch.Timeout.Duration == 0 {
		cfg.Fetch.Timeout.Duration = fetch.DefaultTimeout
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = fetch.DefaultUserAgent
	}
	if cfg.Fetch.Workers == 0 {
		cfg.Fetch.Workers = DefaultWorkers
	}
	if cfg.Digest.RSSLimit == 0 {
		cfg.Digest.RSSLimit = source.DefaultRSSLimit
	}
	if cfg.Digest.CISALimit == 0 {
		cfg.Digest.CISALimit = source.DefaultCISALimit
	}
	if cfg.Digest.Color == "" {
		cfg.Digest.Color = ColorAuto
	}
	if cfg.Digest.Format == "" {
		cfg.Digest.Format = DefaultFormat
	}
}

func validate(cfg *Config) error {
	if cfg.Fetch.Timeout.Duration < 0 {
		return fmt.Errorf("fetch.timeout: must be positive, got %s", cfg.Fetch.Timeout.Duration)
	}
	if cfg.Fetch.Workers < 1 || cfg.Fetch.Workers > MaxWorkers {
		return fmt.Errorf("fetch.workers: must be between 1 and %d, got %d", MaxWorkers, cfg.Fetch.Workers)
	}
	if cfg.Digest.RSSLimit < 1 {
		return fmt.Errorf("digest.rss_limit: must be at least 1, got %d", cfg.Digest.RSSLimit)
	}
	if cfg.Digest.CISALimit < 1 {
		return fmt.Errorf("digest.cisa_limit: must be at least 1, got %d", cfg.Digest.CISALimit)
	}
	if cfg.Digest.TypingDelay.Duration < 0 {
		return fmt.Errorf("digest.typing_delay: must not be negative, got %s", cfg.Digest.TypingDelay.Duration)
	}

	switch cfg.Digest.Color {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("digest.color: unknown mode %q (want auto, always, or never)", cfg.Digest.Color)
	}

	switch cfg.Digest.Format {
	case "terminal", "markdown", "md":
		// valid
	default:
		return fmt.Errorf("digest.format: unknown format %q (want terminal or markdown)", cfg.Digest.Format)
	}

	return nil
}
