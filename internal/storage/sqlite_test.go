package storage

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/morrisraybrooks/PalletManager/internal/common"
)

func TestMarkRetryable(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	assert.True(t, common.IsRetryable(markRetryable(busy)))

	locked := sqlite3.Error{Code: sqlite3.ErrLocked}
	assert.True(t, common.IsRetryable(markRetryable(locked)))

	// Anything else passes through untouched.
	constraint := sqlite3.Error{Code: sqlite3.ErrConstraint}
	assert.False(t, common.IsRetryable(markRetryable(constraint)))

	plain := errors.New("disk I/O error")
	assert.Equal(t, plain, markRetryable(plain))
}
