package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/morrisraybrooks/PalletManager/internal/common"
)

func TestBuildingDefault(t *testing.T) {
	viper.Reset()
	assert.Equal(t, DefaultBuilding, Building())

	viper.Set("buildings.default", 4)
	defer viper.Reset()
	assert.Equal(t, 4, Building())
}

func TestValidateBuilding(t *testing.T) {
	for _, b := range KnownBuildings {
		assert.NoError(t, ValidateBuilding(b))
	}
	assert.ErrorIs(t, ValidateBuilding(0), common.ErrInvalidConfig)
	assert.ErrorIs(t, ValidateBuilding(7), common.ErrInvalidConfig)
	assert.ErrorIs(t, ValidateBuilding(-3), common.ErrInvalidConfig)
}
