package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/config"
	"github.com/morrisraybrooks/PalletManager/internal/service"
	"github.com/morrisraybrooks/PalletManager/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/pallet/pallet.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveBuilding picks the building from the flag or the configured default,
// and rejects buildings the operator doesn't work in.
func resolveBuilding(flagValue int) (int, error) {
	building := flagValue
	if building == 0 {
		building = config.Building()
	}
	if err := config.ValidateBuilding(building); err != nil {
		return 0, common.NewUserError(
			fmt.Sprintf("building %d is not one of ours; pick from %v", building, config.KnownBuildings), err)
	}
	return building, nil
}
