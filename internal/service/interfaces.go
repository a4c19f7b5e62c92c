// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/morrisraybrooks/PalletManager/internal/model"
)

// Storage defines the contract for our persistence layer. All station
// operations are scoped by building; the same aisle-position code is a
// different physical location in a different building.
type Storage interface {
	// Station lookup operations
	Resolve(ctx context.Context, buildingID int, key model.StationKey) (string, error)
	RecordUsage(ctx context.Context, buildingID int, key model.StationKey) error
	StationExists(ctx context.Context, buildingID int, key model.StationKey) (bool, error)

	// Station mutation operations
	UpsertStation(ctx context.Context, record *model.StationRecord) error
	DeleteStation(ctx context.Context, buildingID int, key model.StationKey) error
	DeleteBuilding(ctx context.Context, buildingID int) error
	DeleteAllStations(ctx context.Context) error

	// Station read-model queries
	GetStation(ctx context.Context, buildingID int, key model.StationKey) (*model.StationRecord, error)
	ListStations(ctx context.Context, buildingID int) ([]model.StationRecord, error)
	SearchStations(ctx context.Context, buildingID int, query string) ([]model.StationRecord, error)
	StationsByAisle(ctx context.Context, buildingID int, aisle string) ([]model.StationRecord, error)
	MostUsed(ctx context.Context, buildingID int, limit int) ([]model.StationRecord, error)
	CountStations(ctx context.Context, buildingID int) (int, error)

	// Assignment operations
	SaveAssignment(ctx context.Context, assignment *model.Assignment) error
	ListAssignments(ctx context.Context, buildingID int, includeDelivered bool) ([]model.Assignment, error)
	MarkDelivered(ctx context.Context, id int64) error
	DeleteAssignment(ctx context.Context, id int64) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
