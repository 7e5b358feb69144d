package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/stockroom/internal/common"
)

// Config keys.
const (
	KeyDatabasePath  = "database.path"
	KeySampleLimit   = "classifier.sample_limit"
	KeyKnowledgeBase = "classifier.knowledge_base"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/stockroom/stockroom.db"

// Config holds the resolved application settings.
type Config struct {
	DatabasePath  string
	KnowledgeBase string
	LogLevel      string
	LogFormat     string
	SampleLimit   int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DatabasePath: DefaultDatabasePath,
		LogLevel:     "info",
		LogFormat:    "console",
		SampleLimit:  1000,
	}
}

// SetDefaults registers the default values with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyDatabasePath, d.DatabasePath)
	v.SetDefault(KeySampleLimit, d.SampleLimit)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
}

// Load resolves the configuration from v, which already carries the config
// file, STOCKROOM_ environment variables and bound flags. Paths are expanded.
func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if s := strings.TrimSpace(v.GetString(KeyDatabasePath)); s != "" {
		cfg.DatabasePath = s
	}
	if s := strings.TrimSpace(v.GetString(KeyKnowledgeBase)); s != "" {
		cfg.KnowledgeBase = s
	}
	if s := strings.TrimSpace(v.GetString(KeyLogLevel)); s != "" {
		cfg.LogLevel = s
	}
	if s := strings.TrimSpace(v.GetString(KeyLogFormat)); s != "" {
		cfg.LogFormat = s
	}
	if v.IsSet(KeySampleLimit) {
		cfg.SampleLimit = v.GetInt(KeySampleLimit)
	}

	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	cfg.KnowledgeBase = ExpandPath(cfg.KnowledgeBase)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.SampleLimit <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeySampleLimit, c.SampleLimit)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
