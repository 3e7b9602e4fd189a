package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"aifm/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent builds and verification runs from the local ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Ledger.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger is disabled; enable [ledger] in the configuration to record history")
				return nil
			}

			store, err := ledger.Open(cfg.Ledger.Path)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, records)
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded builds or verifications yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					fmt.Sprintf("%d", record.ID),
					record.Operation,
					record.Verdict,
					record.Title,
					record.PayloadFilename,
					record.ContainerPath,
					record.CreatedAt.Local().Format(time.RFC3339),
				})
			}
			headers := []string{"ID", "Operation", "Verdict", "Title", "Payload", "Container", "When"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit records as JSON")

	return cmd
}
