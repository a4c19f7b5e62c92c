// Package model defines the core value types shared across the application.
package model

import (
	"fmt"
	"time"
)

// StationKey is the canonical identifier for a pick/drop location: a
// two-digit aisle and a two-digit position, independent of building.
type StationKey struct {
	Aisle    string
	Position string
}

// String returns the canonical textual form, e.g. "58-01". Keys derived
// from unrecognized input carry only the cleaned text and render without
// the separator.
func (k StationKey) String() string {
	if k.Position == "" {
		return k.Aisle
	}
	return k.Aisle + "-" + k.Position
}

// IsZero reports whether the key is the empty value.
func (k StationKey) IsZero() bool {
	return k.Aisle == "" && k.Position == ""
}

// Validate ensures both components are exactly two ASCII digits. The
// all-zero group "00" is a legitimate aisle or position, not an absent one.
func (k StationKey) Validate() error {
	if !isTwoDigits(k.Aisle) {
		return fmt.Errorf("invalid aisle %q: must be exactly two digits", k.Aisle)
	}
	if !isTwoDigits(k.Position) {
		return fmt.Errorf("invalid position %q: must be exactly two digits", k.Position)
	}
	return nil
}

func isTwoDigits(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// StationRecord is one row of the per-building lookup table.
type StationRecord struct {
	LastUpdated time.Time
	Key         StationKey
	CheckDigit  string
	Description string
	BuildingID  int
	UsageCount  int
}

// Assignment is a pending pallet pickup/delivery task. The destination is
// stored in canonical station form so it can be resolved later.
type Assignment struct {
	CreatedAt   time.Time
	DeliveredAt *time.Time
	Destination StationKey
	Notes       string
	ID          int64
	BuildingID  int
	Delivered   bool
}
