package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"train-task-tracker/internal/config"
	"train-task-tracker/internal/database"
	"train-task-tracker/internal/metrics"
	"train-task-tracker/internal/testutil"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seededConfig writes a config pointing at a sqlite file holding the test fleet.
func seededConfig(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"TRACKER_DB_DRIVER", "TRACKER_DB_DSN", "TRACKER_PORT"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	dsn := filepath.Join(dir, "tracker.db")

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	_, err = testutil.SeedFleet(db)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("database:\n  driver: sqlite\n  dsn: %s\n  log_level: silent\nfetch:\n  page_size: 2\n", dsn)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "tracker dev")
	require.Contains(t, out, "commit: none")
}

func TestRootCmdHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "report", "refresh", "cache", "version"} {
		require.Contains(t, out, sub)
	}
}

func TestReportCmd_JSON(t *testing.T) {
	cfg := seededConfig(t)

	out, err := run(t, "report", "--config", cfg, "--format", "json", "--trains", "1")
	require.NoError(t, err)

	var m metrics.DashboardMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, 3, m.Stats.Total)
	require.Equal(t, 1, m.Stats.Completed)
	require.Equal(t, "Team A", m.Teams[0].Name)
}

func TestReportCmd_Text(t *testing.T) {
	cfg := seededConfig(t)

	out, err := run(t, "report", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Tasks: 6 total, 2 completed")
	require.Contains(t, out, "Team A")
	require.Contains(t, out, "T02")
}

func TestReportCmd_XLSX(t *testing.T) {
	cfg := seededConfig(t)
	dest := filepath.Join(t.TempDir(), "report.xlsx")

	_, err := run(t, "report", "--config", cfg, "--format", "xlsx")
	require.Error(t, err)

	out, err := run(t, "report", "--config", cfg, "--format", "xlsx", "--out", dest)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote")

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	require.Contains(t, f.GetSheetList(), "Teams")
}

func TestRefreshAndCacheClear(t *testing.T) {
	cfg := seededConfig(t)

	out, err := run(t, "refresh", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Fetched 2 cars and 6 completions")

	out, err = run(t, "cache", "clear", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Cache cleared")
}

func TestMissingExplicitConfig(t *testing.T) {
	_, err := run(t, "report", "--config", "/nonexistent/config.yaml")
	require.Error(t, err)
}
