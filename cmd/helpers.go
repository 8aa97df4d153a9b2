package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/config"
	"github.com/lovelace-project/lovelace-cli/internal/history"
	"github.com/lovelace-project/lovelace-cli/internal/notify"
	"github.com/lovelace-project/lovelace-cli/internal/session"
)

// app bundles the wired client pieces most commands need. Build one with
// buildApp and Close it when done.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	client    *api.Client
	sessions  *session.Manager
	center    *notify.Center
	historyDB *history.DB
	activity  *history.Store
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `lovelace init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the internal logger. Commands print their own output;
// the logger only carries diagnostics, so it is silent unless --verbose.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	zc := zap.NewDevelopmentConfig()
	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildApp wires config, logger, API client, session manager and the activity
// history store.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger()

	client := api.New(cfg.APIURL, log)

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	sessions := session.NewManager(client, session.NewStore(sessionPath), log)
	sessions.Initialize()

	historyPath := cfg.HistoryDB
	if historyPath == "" {
		historyPath, err = history.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	historyDB, err := history.Open(historyPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	return &app{
		cfg:       cfg,
		log:       log,
		client:    client,
		sessions:  sessions,
		center:    notify.NewCenter(),
		historyDB: historyDB,
		activity:  history.NewStore(historyDB),
	}, nil
}

func (a *app) Close() {
	if a.historyDB != nil {
		a.historyDB.Close()
	}
	a.log.Sync()
}

// debounce returns the configured live search debounce window.
func (a *app) debounce() time.Duration {
	return time.Duration(a.cfg.DebounceMS) * time.Millisecond
}

// record stores an activity entry with the current username as actor.
// History failures never fail the command.
func (a *app) record(ctx context.Context, action history.Action, subject, detail string) {
	actor := ""
	if snap := a.sessions.Snapshot(); snap.User != nil {
		actor = snap.User.Username
	}
	err := a.activity.Record(ctx, history.Entry{
		Action:  action,
		Actor:   actor,
		Subject: subject,
		Detail:  detail,
	})
	if err != nil {
		a.log.Warn("recording activity failed", zap.Error(err))
	}
}
