package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".rauberskat"
	envPrefix  = "RSK"

	KeySessionsPath      = "sessions.path"
	KeyBockRoundDoubling = "rules.bock_round_doubling"
	KeyGrandOuvertBase   = "rules.grand_ouvert_base"
	KeyDurchmarschBase   = "rules.durchmarsch_base"
	KeyNullBase          = "rules.null_base"
	KeyCentsPerPoint     = "settlement.cents_per_point"
	KeyLogLevel          = "log.level"

	DefaultCentsPerPoint = 5
	DefaultLogLevel      = "warn"
)

var nullKeys = []string{
	domain.NullKeyPlain,
	domain.NullKeyHand,
	domain.NullKeyOuvert,
	domain.NullKeyHandOuvert,
	domain.NullKeyRevolution,
}

type Settings struct {
	SessionsPath  string
	Rules         domain.Rules
	CentsPerPoint int
	LogLevel      slog.Level
}

// Load reads ~/.rauberskat/config.toml (if present) and RSK_* environment
// overrides into cfg and returns the resolved settings.
func Load(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}

	defaults := domain.DefaultRules()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeySessionsPath, filepath.Join(homeDir, configDir, "sessions.toml"))
	cfg.SetDefault(KeyBockRoundDoubling, defaults.BockRoundDoubling)
	cfg.SetDefault(KeyGrandOuvertBase, defaults.GrandOuvertBase)
	cfg.SetDefault(KeyDurchmarschBase, defaults.DurchmarschBase)
	cfg.SetDefault(KeyCentsPerPoint, DefaultCentsPerPoint)
	cfg.SetDefault(KeyLogLevel, DefaultLogLevel)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionsPath := expandHome(cfg.GetString(KeySessionsPath), homeDir)
	if sessionsPath == "" {
		return Settings{}, errors.New("sessions path is empty")
	}
	cfg.Set(KeySessionsPath, sessionsPath)

	rules := defaults
	rules.BockRoundDoubling = cfg.GetBool(KeyBockRoundDoubling)
	rules.GrandOuvertBase = cfg.GetInt(KeyGrandOuvertBase)
	rules.DurchmarschBase = cfg.GetInt(KeyDurchmarschBase)
	for _, key := range nullKeys {
		if path := KeyNullBase + "." + key; cfg.IsSet(path) {
			rules.NullBase[key] = cfg.GetInt(path)
		}
	}
	if err := rules.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config rules: %w", err)
	}

	centsPerPoint := cfg.GetInt(KeyCentsPerPoint)
	if centsPerPoint < 0 {
		return Settings{}, fmt.Errorf("%s must be non-negative, got %d", KeyCentsPerPoint, centsPerPoint)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetString(KeyLogLevel))); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", KeyLogLevel, err)
	}

	return Settings{
		SessionsPath:  sessionsPath,
		Rules:         rules,
		CentsPerPoint: centsPerPoint,
		LogLevel:      level,
	}, nil
}

func expandHome(path, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
