// Package export writes dashboard metrics as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"train-task-tracker/internal/metrics"

	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetSummary = "Summary"
	SheetTeams   = "Teams"
	SheetTrains  = "Trains"
	SheetDaily   = "Daily"
)

var (
	teamHeaders = []string{
		"Team", "Completed", "In Progress", "Total", "Completed Hours",
		"Person-Days", "Available Hours", "Completion %", "Time Efficiency %", "Members",
	}
	trainHeaders = []string{"Train", "Units", "Completed", "Total", "Percent", "Categories"}
	dailyHeaders = []string{"Date", "Label", "Completed"}
)

// Write renders m into a workbook and writes it to w.
func Write(w io.Writer, m metrics.DashboardMetrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	for _, name := range []string{SheetTeams, SheetTrains, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	summary := [][]any{
		{"Metric", "Value"},
		{"Total tasks", m.Stats.Total},
		{"Completed", m.Stats.Completed},
		{"In progress", m.Stats.InProgress},
		{"Pending", m.Stats.Pending},
		{"Overall efficiency %", m.Stats.OverallEfficiency},
	}
	if err := writeRows(f, SheetSummary, summary, headerStyle); err != nil {
		return err
	}

	teams := [][]any{toRow(teamHeaders)}
	for _, t := range m.Teams {
		teams = append(teams, teamRow(t))
	}
	if m.TFOS != nil {
		teams = append(teams, teamRow(*m.TFOS))
	}
	if err := writeRows(f, SheetTeams, teams, headerStyle); err != nil {
		return err
	}

	trains := [][]any{toRow(trainHeaders)}
	for _, v := range m.Vehicles {
		cats := make([]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			cats = append(cats, fmt.Sprintf("%s %d/%d", c.Category, c.CompletedTasks, c.TotalTasks))
		}
		trains = append(trains, []any{
			v.Label, strings.Join(v.UnitNumbers, ", "), v.CompletedTasks, v.TotalTasks, v.Percent, strings.Join(cats, "; "),
		})
	}
	if err := writeRows(f, SheetTrains, trains, headerStyle); err != nil {
		return err
	}

	daily := [][]any{toRow(dailyHeaders)}
	for _, d := range m.Daily {
		daily = append(daily, []any{d.Date, d.Label, d.Count})
	}
	if err := writeRows(f, SheetDaily, daily, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func teamRow(t metrics.TeamPerformance) []any {
	return []any{
		t.Name, t.Completed, t.InProgress, t.Total, t.CompletedHours,
		t.PersonDays, t.AvailableHours, t.TaskCompletionPercent, t.TimeEfficiency,
		strings.Join(t.Members, ", "),
	}
}

func toRow(headers []string) []any {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return row
}

// writeRows fills sheet from A1 down and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("export: %s header style: %w", sheet, err)
	}
	if len(rows) > 0 {
		last, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 15); err != nil {
			return fmt.Errorf("export: %s column width: %w", sheet, err)
		}
	}
	return nil
}
