/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load every table and report row counts",
		Long: `Load every table from the configured source and print the row count of
each. Any decode error is reported with its table and line number and the
command fails.

Examples:
  easytables load
  easytables load --data-dir ./tables -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			c, err := requireContainer()
			if err != nil {
				return err
			}

			m, err := c.LoadTables(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("output")
			return outputStats(cmd.OutOrStdout(), format, m)
		},
	}

	loadCmd.Flags().StringP("output", "o", formatTable, "Output format (table, json)")
	return loadCmd
}
