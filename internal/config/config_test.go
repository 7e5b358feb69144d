package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.local/share/stockroom/stockroom.db", cfg.DatabasePath)
	assert.Equal(t, 1000, cfg.SampleLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.KnowledgeBase)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	v := viper.New()
	SetDefaults(v)
	v.Set(KeyDatabasePath, "~/data/shop.db")
	v.Set(KeyKnowledgeBase, "$HOME/kb.yaml")
	v.Set(KeySampleLimit, 50)
	v.Set(KeyLogLevel, "debug")
	v.Set(KeyLogFormat, "json")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", "data", "shop.db"), cfg.DatabasePath)
	assert.Equal(t, "/home/tester/kb.yaml", cfg.KnowledgeBase)
	assert.Equal(t, 50, cfg.SampleLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "zero sample limit", key: KeySampleLimit, val: 0},
		{name: "negative sample limit", key: KeySampleLimit, val: -3},
		{name: "unknown level", key: KeyLogLevel, val: "verbose"},
		{name: "unknown format", key: KeyLogFormat, val: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			require.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}
