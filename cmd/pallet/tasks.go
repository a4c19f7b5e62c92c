package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Track pending pallet pickups and deliveries",
	}

	cmd.PersistentFlags().IntP("building", "b", 0, "building (default from config)")

	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksDoneCmd())
	cmd.AddCommand(tasksDeleteCmd())

	return cmd
}

func tasksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <destination>",
		Short: "Record a pallet headed for a station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			building, err := resolveBuilding(buildingFlag(cmd))
			if err != nil {
				return err
			}

			raw := args[0]
			if !station.Classify(raw).Resolvable() {
				return common.NewUserError(fmt.Sprintf("%q is not a complete station code", raw), nil)
			}
			key := station.Normalize(raw)

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			notes, _ := cmd.Flags().GetString("notes")
			assignment := &model.Assignment{
				BuildingID:  building,
				Destination: key,
				Notes:       notes,
			}

			if err := store.SaveAssignment(ctx, assignment); err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}

			// Manual entry counts as a use of the destination station.
			// RecordUsage leaves unknown stations alone, so no existence
			// check is needed first.
			if err := store.RecordUsage(ctx, building, key); err != nil {
				slog.Warn("failed to record usage", "station", key.String(), "error", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("task #%d: pallet to %s (building %d)", assignment.ID, key, building))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringP("notes", "n", "", "optional note, e.g. \"two pallets, top heavy\"")

	return cmd
}

func tasksListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending tasks",
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

			all, _ := cmd.Flags().GetBool("all")
			assignments, err := store.ListAssignments(ctx, building, all)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(assignments) == 0 {
				fmt.Println(cli.FormatSubtle("no pending tasks")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Building %d tasks", building))) //nolint:forbidigo // User-facing output
			for _, a := range assignments {
				status := cli.FormatWarning("pending")
				if a.Delivered {
					status = cli.FormatSuccess("delivered")
				}
				line := fmt.Sprintf("  #%d  %s  %s", a.ID, a.Destination, status)
				if a.Notes != "" {
					line += cli.FormatSubtle("  " + a.Notes)
				}
				fmt.Println(line) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "include delivered tasks")

	return cmd
}

func tasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			if err := store.MarkDelivered(ctx, id); err != nil {
				return fmt.Errorf("failed to mark task #%d delivered: %w", id, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("task #%d delivered", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func tasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			if err := store.DeleteAssignment(ctx, id); err != nil {
				return fmt.Errorf("failed to delete task #%d: %w", id, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("task #%d deleted", id))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
