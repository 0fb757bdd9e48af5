package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/rauberskat-cli/internal/adapters/render/scoreboard"
	tomlrepo "github.com/bnema/rauberskat-cli/internal/adapters/repo/toml"
	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/bnema/rauberskat-cli/internal/config"
	"github.com/bnema/rauberskat-cli/internal/ports"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

type app struct {
	service       *application.Service
	settings      config.Settings
	scoreRenderer func(application.StandingsView, scoreboard.RenderOptions) (string, error)
}

func wireApp(stderr io.Writer) (*app, error) {
	cfg := viper.New()
	settings, err := config.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	logger := newLogger(stderr, settings.LogLevel)

	return &app{
		service:       application.NewService(repo, ports.SystemClock{}, ports.UUIDGenerator{}, settings.Rules, logger),
		settings:      settings,
		scoreRenderer: scoreboard.Render,
	}, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithWriter(w).WithLevel(ptermLevel(level)))
	return slog.New(handler)
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level < slog.LevelDebug:
		return pterm.LogLevelTrace
	case level < slog.LevelInfo:
		return pterm.LogLevelDebug
	case level < slog.LevelWarn:
		return pterm.LogLevelInfo
	case level < slog.LevelError:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
