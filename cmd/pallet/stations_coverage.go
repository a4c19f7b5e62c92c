package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/model"
)

// The warehouse grid: aisles 01-58, positions 01-63 per aisle. Buildings
// share the numbering, which is why every lookup carries the building.
const (
	gridAisles    = 58
	gridPositions = 63
)

func stationsCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Report per-aisle check digit coverage",
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

			records, err := store.ListStations(ctx, building)
			if err != nil {
				return fmt.Errorf("failed to list stations: %w", err)
			}

			printCoverage(building, records)
			return nil
		},
	}
}

func printCoverage(building int, records []model.StationRecord) {
	byAisle := make(map[string]int)
	for _, rec := range records {
		byAisle[aisleOf(rec.Key)]++
	}

	aisles := make([]string, 0, len(byAisle))
	for aisle := range byAisle {
		aisles = append(aisles, aisle)
	}
	sort.Strings(aisles)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Building %d coverage: %d of %d stations", //nolint:forbidigo // User-facing output
		building, len(records), gridAisles*gridPositions)))

	for _, aisle := range aisles {
		count := byAisle[aisle]
		bar := strings.Repeat("█", count*20/gridPositions)
		line := fmt.Sprintf("  aisle %s  %3d/%d  %s", aisle, count, gridPositions, bar)
		if count == gridPositions {
			line = cli.FormatSuccess(line)
		}
		fmt.Println(line) //nolint:forbidigo // User-facing output
	}

	if missing := gridAisles - len(aisles); missing > 0 {
		fmt.Println(cli.FormatSubtle(fmt.Sprintf("  %d aisles have no data yet", missing))) //nolint:forbidigo // User-facing output
	}
}

// aisleOf extracts the aisle component for grouping in reports.
func aisleOf(key model.StationKey) string {
	return key.Aisle
}
