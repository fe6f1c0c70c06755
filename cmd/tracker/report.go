package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"train-task-tracker/internal/export"
	"train-task-tracker/internal/metrics"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		trains  []int
		sortBy  string
		format  string
		outPath string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print dashboard metrics",
		Long:  "Aggregates the cached dataset (fetching only when no cache exists) and prints it as text, JSON or xlsx.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, reportOpts{
				filter:  metrics.Filter{Trains: trains},
				sort:    metrics.ParseVehicleSort(sortBy),
				format:  format,
				outPath: outPath,
				refresh: refresh,
			})
		},
	}

	cmd.Flags().IntSliceVarP(&trains, "trains", "t", nil, "train numbers to include (default all)")
	cmd.Flags().StringVar(&sortBy, "sort", string(metrics.SortByTrain), "vehicle order: train or percent")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout (required for xlsx)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch before reporting")
	return cmd
}

type reportOpts struct {
	filter  metrics.Filter
	sort    metrics.VehicleSort
	format  string
	outPath string
	refresh bool
}

func runReport(cmd *cobra.Command, opts reportOpts) error {
	if opts.format == "xlsx" && opts.outPath == "" {
		return fmt.Errorf("--out is required for xlsx output")
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if opts.refresh {
		if _, err := a.svc.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
	}
	m, err := a.svc.Metrics(ctx, opts.filter, metrics.Options{Sort: opts.sort})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "xlsx":
		if err := export.Write(out, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.outPath)
		return nil
	case "text":
		printReport(out, m, a.svc.Status().Partial)
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func printReport(out io.Writer, m metrics.DashboardMetrics, partial bool) {
	s := m.Stats
	if partial {
		fmt.Fprintln(out, "WARNING: dataset is incomplete, a page failed to load")
	}
	fmt.Fprintf(out, "Tasks: %d total, %d completed, %d in progress, %d pending (%d%%)\n\n",
		s.Total, s.Completed, s.InProgress, s.Pending, s.OverallEfficiency)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tDONE\tHOURS\tPERSON-DAYS\tEFFICIENCY\tMEMBERS")
	rows := m.Teams
	if m.TFOS != nil {
		rows = append(rows[:len(rows):len(rows)], *m.TFOS)
	}
	for _, t := range rows {
		fmt.Fprintf(w, "%s\t%d/%d\t%.1f\t%d\t%d%%\t%s\n",
			t.Name, t.Completed, t.Total, t.CompletedHours, t.PersonDays, t.TimeEfficiency, strings.Join(t.Members, " "))
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAIN\tUNITS\tDONE\tPERCENT")
	for _, v := range m.Vehicles {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d%%\n", v.Label, strings.Join(v.UnitNumbers, ","), v.CompletedTasks, v.TotalTasks, v.Percent)
	}
	w.Flush()
}
