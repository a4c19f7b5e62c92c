package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

func stationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Manage the station check digit table",
	}

	cmd.PersistentFlags().IntP("building", "b", 0, "building (default from config)")

	cmd.AddCommand(stationsAddCmd())
	cmd.AddCommand(stationsListCmd())
	cmd.AddCommand(stationsSearchCmd())
	cmd.AddCommand(stationsTopCmd())
	cmd.AddCommand(stationsDeleteCmd())
	cmd.AddCommand(stationsClearCmd())
	cmd.AddCommand(stationsCoverageCmd())
	cmd.AddCommand(stationsExportCmd())

	return cmd
}

func stationsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <station> <check-digit>",
		Short: "Add or update a station check digit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			building, err := resolveBuilding(buildingFlag(cmd))
			if err != nil {
				return err
			}

			raw, checkDigit := args[0], args[1]
			if !station.Classify(raw).Resolvable() {
				return common.NewUserError(fmt.Sprintf("%q is not a complete station code", raw), nil)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			description, _ := cmd.Flags().GetString("description")
			record := &model.StationRecord{
				BuildingID:  building,
				Key:         station.Normalize(raw),
				CheckDigit:  checkDigit,
				Description: description,
			}

			if err := store.UpsertStation(ctx, record); err != nil {
				return fmt.Errorf("failed to save station: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("saved %s → %s (building %d)", record.Key, checkDigit, building))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringP("description", "d", "", "optional description, e.g. \"cold storage end cap\"")

	return cmd
}

func stationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stations, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			aisle, _ := cmd.Flags().GetString("aisle")

			var records []model.StationRecord
			if aisle != "" {
				records, err = store.StationsByAisle(ctx, building, aisle)
			} else {
				records, err = store.ListStations(ctx, building)
			}
			if err != nil {
				return fmt.Errorf("failed to list stations: %w", err)
			}

			printStations(building, records)
			return nil
		},
	}

	cmd.Flags().StringP("aisle", "a", "", "only this aisle, sorted by position")

	return cmd
}

func stationsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search stations by key, description, or check digit",
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

			records, err := store.SearchStations(ctx, building, args[0])
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			printStations(building, records)
			return nil
		},
	}
}

func stationsTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most used stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := store.MostUsed(ctx, building, limit)
			if err != nil {
				return fmt.Errorf("failed to load most used stations: %w", err)
			}

			printStations(building, records)
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 10, "how many stations to show")

	return cmd
}

func stationsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <station>",
		Short: "Delete one station record",
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

			key := station.Normalize(args[0])
			if err := store.DeleteStation(ctx, building, key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted %s from building %d", key, building))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func stationsClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every station in a building (or everywhere with --all)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			if all, _ := cmd.Flags().GetBool("all"); all {
				if err := store.DeleteAllStations(ctx); err != nil {
					return fmt.Errorf("failed to clear stations: %w", err)
				}
				fmt.Println(cli.FormatWarning("cleared every station in every building")) //nolint:forbidigo // User-facing output
				return nil
			}

			building, err := resolveBuilding(buildingFlag(cmd))
			if err != nil {
				return err
			}

			if err := store.DeleteBuilding(ctx, building); err != nil {
				return fmt.Errorf("failed to clear building %d: %w", building, err)
			}

			fmt.Println(cli.FormatWarning(fmt.Sprintf("cleared all stations in building %d", building))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "wipe every building, not just one")

	return cmd
}

func printStations(building int, records []model.StationRecord) {
	if len(records) == 0 {
		fmt.Println(cli.FormatSubtle(fmt.Sprintf("no stations in building %d", building))) //nolint:forbidigo // User-facing output
		return
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Building %d: %d stations", building, len(records)))) //nolint:forbidigo // User-facing output
	for _, rec := range records {
		line := fmt.Sprintf("  %s → %s", rec.Key, cli.FormatSuccess(rec.CheckDigit))
		if rec.UsageCount > 0 {
			line += cli.FormatSubtle(fmt.Sprintf("  (%d uses)", rec.UsageCount))
		}
		if rec.Description != "" {
			line += cli.FormatSubtle("  " + rec.Description)
		}
		fmt.Println(line) //nolint:forbidigo // User-facing output
	}
}

func buildingFlag(cmd *cobra.Command) int {
	building, _ := cmd.Flags().GetInt("building")
	return building
}

func closeStorage(store interface{ Close() error }) {
	if err := store.Close(); err != nil {
		common.LogError(err, "failed to close storage", nil)
	}
}
