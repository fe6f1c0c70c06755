package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Clear the cache and refetch the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			ds, err := a.svc.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d cars and %d completions\n", len(ds.Cars), len(ds.Completions))
			if ds.Partial {
				fmt.Fprintln(out, "WARNING: some pages failed; the partial dataset was not cached")
			}
			return nil
		},
	}
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Dataset cache commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the cached dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			if err := a.svc.ClearCache(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	})
	return cmd
}
