package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loankit/loankit/pkg/config"
)

type testConfig struct {
	Host    string `env:"TESTCFG_HOST" envDefault:"localhost"`
	Port    int    `env:"TESTCFG_PORT" envDefault:"5432"`
	Token   string `env:"TESTCFG_TOKEN,required"`
	Verbose bool   `env:"TESTCFG_VERBOSE"`
}

func TestLoad(t *testing.T) {
	t.Run("reads values and defaults from the environment", func(t *testing.T) {
		t.Setenv("TESTCFG_PORT", "6432")
		t.Setenv("TESTCFG_TOKEN", "s3cr3t")
		t.Setenv("TESTCFG_VERBOSE", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host, "default applies when the variable is unset")
		assert.Equal(t, 6432, cfg.Port)
		assert.Equal(t, "s3cr3t", cfg.Token)
		assert.True(t, cfg.Verbose)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("malformed value fails", func(t *testing.T) {
		t.Setenv("TESTCFG_TOKEN", "s3cr3t")
		t.Setenv("TESTCFG_PORT", "not-a-number")

		var cfg testConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})
}
