// Package storage provides the data persistence layer for the pallet application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/morrisraybrooks/PalletManager/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidBuilding   = errors.New("building id must be positive")
	ErrInvalidStationKey = errors.New("invalid station key")
	ErrInvalidRecord     = errors.New("invalid station record")
	ErrInvalidAssignment = errors.New("invalid assignment")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBuilding ensures a building identifier is plausible.
func validateBuilding(buildingID int) error {
	if buildingID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBuilding, buildingID)
	}
	return nil
}

// validateKey ensures a station key is in canonical two-digit form.
func validateKey(key model.StationKey) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStationKey, err)
	}
	return nil
}

// validateRecord validates a station record before persisting. Check digits
// run 1-3 digits in practice; "00" is a real value, never treated as blank.
func validateRecord(record *model.StationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateBuilding(record.BuildingID); err != nil {
		return err
	}
	if err := validateKey(record.Key); err != nil {
		return err
	}
	if len(record.CheckDigit) < 1 || len(record.CheckDigit) > 3 {
		return fmt.Errorf("%w: check digit must be 1-3 digits, got %q", ErrInvalidRecord, record.CheckDigit)
	}
	for _, r := range record.CheckDigit {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: check digit must be numeric, got %q", ErrInvalidRecord, record.CheckDigit)
		}
	}
	if record.UsageCount < 0 {
		return fmt.Errorf("%w: usage count cannot be negative", ErrInvalidRecord)
	}
	return nil
}

// validateAssignment validates an assignment before persisting.
func validateAssignment(assignment *model.Assignment) error {
	if assignment == nil {
		return fmt.Errorf("%w: assignment", ErrNilParameter)
	}
	if err := validateBuilding(assignment.BuildingID); err != nil {
		return err
	}
	if err := assignment.Destination.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssignment, err)
	}
	return nil
}
