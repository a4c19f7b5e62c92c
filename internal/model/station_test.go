package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStationKeyValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     StationKey
		wantErr bool
	}{
		{name: "canonical", key: StationKey{Aisle: "58", Position: "01"}},
		{name: "all zeros is a real location", key: StationKey{Aisle: "00", Position: "00"}},
		{name: "missing position", key: StationKey{Aisle: "58"}, wantErr: true},
		{name: "one digit aisle", key: StationKey{Aisle: "5", Position: "01"}, wantErr: true},
		{name: "three digit position", key: StationKey{Aisle: "58", Position: "011"}, wantErr: true},
		{name: "letters", key: StationKey{Aisle: "5a", Position: "01"}, wantErr: true},
		{name: "empty", key: StationKey{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStationKeyString(t *testing.T) {
	assert.Equal(t, "58-01", StationKey{Aisle: "58", Position: "01"}.String())
	assert.Equal(t, "00-00", StationKey{Aisle: "00", Position: "00"}.String())
	// Unparsed fallback keys render their raw text without a separator.
	assert.Equal(t, "58011", StationKey{Aisle: "58011"}.String())
	assert.Equal(t, "", StationKey{}.String())
}

func TestValidationClassResolvable(t *testing.T) {
	resolvable := []ValidationClass{ClassCompleteCanonical, ClassCompleteCompact, ClassCompleteFull}
	for _, c := range resolvable {
		assert.True(t, c.Resolvable(), c.String())
	}

	notResolvable := []ValidationClass{
		ClassEmpty, ClassTooShort, ClassPartialFormat, ClassPartialFull,
		ClassInvalidCharacters, ClassInvalidFormat,
	}
	for _, c := range notResolvable {
		assert.False(t, c.Resolvable(), c.String())
	}
}
