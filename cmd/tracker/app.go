package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"train-task-tracker/internal/auth"
	"train-task-tracker/internal/cache"
	"train-task-tracker/internal/config"
	"train-task-tracker/internal/dashboard"
	"train-task-tracker/internal/database"
	"train-task-tracker/internal/fetch"
	"train-task-tracker/internal/realtime"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

// app is everything a command needs once config is loaded.
type app struct {
	cfg *config.Config
	svc *dashboard.Service
}

// loadConfig reads --config. A missing default file falls back to
// defaults plus environment; an explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path)
}

// openApp connects the database and wires the dashboard service.
func openApp(cmd *cobra.Command, noCache bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	auth.Configure(cfg.Auth)

	if err := database.InitDB(cfg.Database); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db := database.GetDB()

	var store cache.Store
	if noCache || cfg.Cache.Disabled {
		store = cache.NewMemoryStore()
	} else {
		sqlStore, err := cache.NewSQLStore(db)
		if err != nil {
			return nil, err
		}
		store = sqlStore
	}
	dc := cache.NewDatasetCache(store, cfg.Cache.Key)

	fetcher := &fetch.Fetcher{
		Source:   database.PageReader{DB: db},
		PageSize: cfg.Fetch.PageSize,
	}
	return &app{
		cfg: cfg,
		svc: dashboard.NewService(fetcher, dc, realtime.GetHub()),
	}, nil
}
