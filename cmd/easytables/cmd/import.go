/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/easytables/pkg/logging"
	"github.com/ssargent/easytables/pkg/provider"
	"github.com/ssargent/easytables/pkg/storage"
	"github.com/ssargent/easytables/pkg/tables"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the table files into the table store",
		Long: `Copy every known table file from the data directory into the pebble
table store. Each imported table gets a new revision id. Set source: store in
the configuration to load from the store afterwards.

Examples:
  easytables import
  easytables import --data-dir ./tables --store-dir ./tables/store`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("store-dir") {
				cfg.StoreDir, _ = cmd.Flags().GetString("store-dir")
			}

			store, err := storage.Open(cfg.StoreDir)
			if err != nil {
				return err
			}
			defer store.Close()

			dir := provider.NewDirProvider(cfg.DataDir, cfg.TableExt)
			imported, missing, err := store.ImportDir(cmd.Context(), dir, tables.TableNames())
			if err != nil {
				return err
			}

			log := logging.WithComponent("import")
			for _, name := range missing {
				log.Warn("no file for table", "table", name, "path", dir.Path(name))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tREVISION")
			for _, name := range tables.TableNames() {
				if rev, ok := imported[name]; ok {
					fmt.Fprintf(w, "%s\t%s\n", name, rev)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			cmd.Printf("Imported %d of %d tables into %s\n", len(imported), len(tables.TableNames()), cfg.StoreDir)
			return nil
		},
	}

	importCmd.Flags().String("store-dir", "", "Table store directory (default from config)")
	return importCmd
}
