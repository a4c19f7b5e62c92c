package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
)

func stationsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export a building's stations in the import CSV format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			building, err := resolveBuilding(buildingFlag(cmd))
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			records, err := store.ListStations(ctx, building)
			if err != nil {
				return fmt.Errorf("failed to list stations: %w", err)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			w := csv.NewWriter(f)
			if err := w.Write([]string{"building", "station", "check_digit", "description"}); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
			for _, rec := range records {
				row := []string{strconv.Itoa(rec.BuildingID), rec.Key.String(), rec.CheckDigit, rec.Description}
				if err := w.Write(row); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("failed to flush export: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d stations from building %d to %s", len(records), building, args[0]))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	return cmd
}
