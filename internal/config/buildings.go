package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/morrisraybrooks/PalletManager/internal/common"
)

// Default warehouse layout. Building 3 is where most picks happen; the
// others share the same aisle-position numbering, so lookups must always
// carry the building explicitly.
const (
	DefaultBuilding = 3
)

// KnownBuildings are the facilities the operator works across.
var KnownBuildings = []int{2, 3, 4}

// Building returns the configured default building, falling back to
// DefaultBuilding when unset.
func Building() int {
	if b := viper.GetInt("buildings.default"); b != 0 {
		return b
	}
	return DefaultBuilding
}

// ValidateBuilding ensures the given building is one the operator works in.
func ValidateBuilding(id int) error {
	for _, b := range KnownBuildings {
		if id == b {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown building %d (known: %v)", common.ErrInvalidConfig, id, KnownBuildings)
}
