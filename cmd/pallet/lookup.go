package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/station"
	"github.com/morrisraybrooks/PalletManager/internal/tui"
)

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [code]",
		Short: "Look up a station check digit",
		Long: `Look up the check digit for a station. Accepts any shorthand the
terminal does not: compact ("5801"), canonical ("58-01"), or the verbose
form it prints ("3-58-01-1").

With no argument, opens the interactive as-you-type screen.

Examples:
  pallet lookup 5801
  pallet lookup 58-01 -b 4
  pallet lookup`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLookup,
	}

	cmd.Flags().IntP("building", "b", 0, "building to look up in (default from config)")
	cmd.Flags().Bool("no-usage", false, "don't increment the usage counter on a hit")
	cmd.Flags().BoolP("interactive", "i", false, "open the as-you-type screen")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	buildingArg, _ := cmd.Flags().GetInt("building")
	building, err := resolveBuilding(buildingArg)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	interactive, _ := cmd.Flags().GetBool("interactive")
	if len(args) == 0 || interactive {
		return tui.Run(tui.Config{Storage: store, Building: building})
	}

	raw := args[0]
	class := station.Classify(raw)
	if !class.Resolvable() {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%q is %s, not a complete station code", raw, class))) //nolint:forbidigo // User-facing output
		if suggestions := station.Suggest(raw); len(suggestions) > 0 {
			fmt.Println(cli.FormatSubtle(fmt.Sprintf("did you mean something like %v?", suggestions))) //nolint:forbidigo // User-facing output
		}
		return nil
	}

	key := station.Normalize(raw)
	checkDigit, err := store.Resolve(ctx, building, key)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("station %s not found in building %d, enter manually", key, building))) //nolint:forbidigo // User-facing output
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	fmt.Printf("%s  %s\n", cli.CheckDigitStyle.Render(checkDigit), cli.FormatSubtle(fmt.Sprintf("station %s, building %d", key, building))) //nolint:forbidigo // User-facing output

	if noUsage, _ := cmd.Flags().GetBool("no-usage"); !noUsage {
		if err := store.RecordUsage(ctx, building, key); err != nil {
			slog.Warn("failed to record usage", "station", key.String(), "error", err)
		}
	}

	return nil
}
