package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
	"github.com/morrisraybrooks/PalletManager/internal/testutil"
)

func TestImport_SkipsBadRowsWithoutAborting(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	// Five good rows in mixed formats, one missing its check digit.
	src := strings.Join([]string{
		"station,check_digit",
		"58-01,42",
		"5802,17",
		"03-58-03-01,23",
		"58-04,",
		"58-05,99,end cap",
		"3-58-06-1,07",
	}, "\n")

	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 5, result.Failures[0].Line)

	ctx := context.Background()
	count, err := store.CountStations(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	// Rows were normalized on the way in.
	checkDigit, err := store.Resolve(ctx, 3, station.Normalize("58-02"))
	require.NoError(t, err)
	assert.Equal(t, "17", checkDigit)

	record, err := store.GetStation(ctx, 3, station.Normalize("58-05"))
	require.NoError(t, err)
	assert.Equal(t, "end cap", record.Description)
}

func TestImport_BuildingColumn(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	src := strings.Join([]string{
		"building,station,check_digit",
		"4,58-01,42",
		"2,5802,17",
	}, "\n")

	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	ctx := context.Background()
	checkDigit, err := store.Resolve(ctx, 4, station.Normalize("58-01"))
	require.NoError(t, err)
	assert.Equal(t, "42", checkDigit)

	checkDigit, err = store.Resolve(ctx, 2, station.Normalize("58-02"))
	require.NoError(t, err)
	assert.Equal(t, "17", checkDigit)

	// No building column: rows land in the default.
	_, err = store.Resolve(ctx, 3, station.Normalize("58-01"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestImport_EmptySource(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	// Zero bytes and header-only are both empty, distinct from a batch
	// that imported nothing new.
	for _, src := range []string{"", "station,check_digit\n"} {
		_, err := imp.Import(context.Background(), strings.NewReader(src))
		assert.ErrorIs(t, err, common.ErrEmptyImport)
	}
}

func TestImport_UnrecognizedStationFormat(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	src := strings.Join([]string{
		"station,check_digit",
		"58011,42",
		"58-1,42",
		"58-01,42",
	}, "\n")

	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
}

func TestImport_ReportsProgress(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	var calls []int
	imp.OnProgress(func(processed int) {
		calls = append(calls, processed)
	})

	src := strings.Join([]string{
		"station,check_digit",
		"58-01,42",
		"58-02,17",
		"58-03,99",
	}, "\n")

	_, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)
	imp.DryRun = true

	src := "station,check_digit\n58-01,42\n"
	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	count, err := store.CountStations(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestImport_RetriesLockedDatabase(t *testing.T) {
	store := testutil.NewMockStorage()
	attempts := 0
	store.UpsertHook = func(*model.StationRecord) error {
		attempts++
		if attempts == 1 {
			return &common.RetryableError{Err: errors.New("database is locked"), Retryable: true}
		}
		return nil
	}
	imp := New(store, 3)

	src := "station,check_digit\n58-01,42\n"
	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, attempts)
}

func TestImport_PersistentLockSkipsRow(t *testing.T) {
	store := testutil.NewMockStorage()
	store.UpsertHook = func(*model.StationRecord) error {
		return &common.RetryableError{Err: errors.New("database is locked"), Retryable: true}
	}
	imp := New(store, 3)

	// A row that never gets through is reported like any other bad row;
	// the batch itself still completes.
	src := "station,check_digit\n58-01,42\n"
	result, err := imp.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Reason, "max retries")
}

func TestImport_Cancellation(t *testing.T) {
	store := testutil.NewMockStorage()
	imp := New(store, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := "station,check_digit\n58-01,42\n"
	_, err := imp.Import(ctx, strings.NewReader(src))
	assert.ErrorIs(t, err, common.ErrImportAborted)
}
