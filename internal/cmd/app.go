package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/config"
	"github.com/skillsphere/skillsphere/internal/errors"
	"github.com/skillsphere/skillsphere/internal/log"
	"github.com/skillsphere/skillsphere/internal/session"
	"github.com/skillsphere/skillsphere/internal/tui"
)

// app bundles the wired dependencies every command needs: resolved
// configuration, logger, cookie-backed API client and the session
// store.
type app struct {
	cfgPath string
	cfg     config.Config
	logger  *log.Logger
	jar     *api.PersistentJar
	client  *api.Client
	store   *session.Store
}

// loadConfig resolves the configuration file path and loads it. A
// missing file at the default path falls back to defaults, but a path
// the user passed explicitly must exist.
func loadConfig() (config.Config, string, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, "", err
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Config{}, "", errors.NewConfigNotFoundError(path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// newApp loads configuration, applies flag overrides and wires the
// client stack. Flags beat environment, environment beats file.
func newApp() (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if flagBackendURL != "" {
		cfg.BackendURL = flagBackendURL
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.Log.Level)
	logCfg.Format = log.ParseFormat(cfg.Log.Format)
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	jar, err := api.NewPersistentJar(cfg.CookieFile)
	if err != nil {
		return nil, err
	}

	client := api.NewClientWithJar(cfg.BackendURL, jar)
	store := session.NewStore(client, logger)

	return &app{
		cfgPath: path,
		cfg:     cfg,
		logger:  logger,
		jar:     jar,
		client:  client,
		store:   store,
	}, nil
}

// runApp is the default command: the full-screen interactive client
func runApp(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	unsubscribe := a.store.Subscribe(func(s session.Session) {
		a.logger.Debug("session replaced",
			"logged_in", s.IsLoggedIn,
			"onboarded", s.HasCompletedOnboarding,
		)
	})
	defer unsubscribe()

	model := tui.NewModel(a.store, a.client, a.logger)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
