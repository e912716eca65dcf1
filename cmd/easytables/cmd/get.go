/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Print one record",
		Long: `Load every table, then print the record with the given id.

Examples:
  easytables get Hero 1
  easytables get Skill 2 -o line`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			id, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid id %q: must be a 32-bit integer", args[1])
			}

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

			rec, found, err := m.Lookup(table, int32(id))
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no %s with id %d", table, id)
			}

			format, _ := cmd.Flags().GetString("output")
			return outputRecord(cmd.OutOrStdout(), format, rec, cfg.DelimiterByte())
		},
	}

	getCmd.Flags().StringP("output", "o", formatJSON, "Output format (json, line)")
	return getCmd
}
