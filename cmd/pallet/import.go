package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk import station check digits from a CSV file",
		Long: `Import station check digits from a delimited file. The first row is a
header and is skipped. Each data row is:

  building?, station, check digit[, description]

The building column is optional; without it rows go to --building (or the
configured default). Bad rows are skipped and reported, never fatal.

Examples:
  pallet import stations.csv
  pallet import stations.csv --building 4 --replace`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().IntP("building", "b", 0, "building for rows without one (default from config)")
	cmd.Flags().Bool("replace", false, "wipe the building's table first (resets usage counts)")
	cmd.Flags().Bool("dry-run", false, "parse and report without writing")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	buildingFlagValue, _ := cmd.Flags().GetInt("building")
	building, err := resolveBuilding(buildingFlagValue)
	if err != nil {
		return err
	}

	replace, _ := cmd.Flags().GetBool("replace")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if replace && !dryRun {
		if err := store.DeleteBuilding(ctx, building); err != nil {
			return fmt.Errorf("failed to clear building before import: %w", err)
		}
	}

	imp := importer.New(store, building)
	imp.DryRun = dryRun

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Importing stations...[reset]"),
		progressbar.OptionEnableColorCodes(true),
	)
	imp.OnProgress(func(int) {
		_ = bar.Add(1)
	})

	result, err := imp.Import(ctx, f)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d stations into building %d", result.Imported, building))) //nolint:forbidigo // User-facing output
	if result.Skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("skipped %d rows:", result.Skipped))) //nolint:forbidigo // User-facing output
		for _, failure := range result.Failures {
			fmt.Println(cli.FormatSubtle("  " + failure.Error())) //nolint:forbidigo // User-facing output
		}
	}
	if dryRun {
		fmt.Println(cli.FormatSubtle("dry run: nothing was written")) //nolint:forbidigo // User-facing output
	}

	return nil
}
