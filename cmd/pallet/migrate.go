package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			fmt.Println(cli.FormatSuccess("database schema is up to date")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
