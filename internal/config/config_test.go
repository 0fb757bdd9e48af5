package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, homeDir string, lines ...string) {
	t.Helper()

	dir := filepath.Join(homeDir, ".rauberskat")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, ".rauberskat", "sessions.toml"), settings.SessionsPath)
	assert.Equal(t, domain.DefaultRules(), settings.Rules)
	assert.Equal(t, DefaultCentsPerPoint, settings.CentsPerPoint)
	assert.Equal(t, slog.LevelWarn, settings.LogLevel)
}

func TestLoadReadsConfigFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	writeConfig(t, homeDir,
		"[sessions]",
		"path = \"~/scores/table.toml\"",
		"",
		"[rules]",
		"bock_round_doubling = true",
		"grand_ouvert_base = 24",
		"",
		"[rules.null_base]",
		"null-revolution = 70",
		"",
		"[settlement]",
		"cents_per_point = 10",
		"",
		"[log]",
		"level = \"debug\"",
	)

	cfg := viper.New()
	settings, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, "scores", "table.toml"), settings.SessionsPath)
	assert.Equal(t, settings.SessionsPath, cfg.GetString(KeySessionsPath))
	assert.True(t, settings.Rules.BockRoundDoubling)
	assert.Equal(t, 24, settings.Rules.GrandOuvertBase)
	assert.Equal(t, 120, settings.Rules.DurchmarschBase)
	assert.Equal(t, 70, settings.Rules.NullBase[domain.NullKeyRevolution])
	assert.Equal(t, 23, settings.Rules.NullBase[domain.NullKeyPlain])
	assert.Equal(t, 10, settings.CentsPerPoint)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	writeConfig(t, homeDir, "[settlement]", "cents_per_point = 10")
	t.Setenv("RSK_SETTLEMENT_CENTS_PER_POINT", "2")
	t.Setenv("RSK_LOG_LEVEL", "info")

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 2, settings.CentsPerPoint)
	assert.Equal(t, slog.LevelInfo, settings.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr string
	}{
		{name: "negative rate", lines: []string{"[settlement]", "cents_per_point = -1"}, wantErr: "must be non-negative"},
		{name: "zero grand ouvert base", lines: []string{"[rules]", "grand_ouvert_base = 0"}, wantErr: "grand ouvert base must be positive"},
		{name: "unknown log level", lines: []string{"[log]", "level = \"loud\""}, wantErr: "parse log.level"},
		{name: "malformed file", lines: []string{"[rules"}, wantErr: "read config file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			homeDir := t.TempDir()
			t.Setenv("HOME", homeDir)
			writeConfig(t, homeDir, tc.lines...)

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
