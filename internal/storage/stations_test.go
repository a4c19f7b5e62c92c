package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testRecord(building int, key, checkDigit string) *model.StationRecord {
	return &model.StationRecord{
		BuildingID: building,
		Key:        station.Normalize(key),
		CheckDigit: checkDigit,
	}
}

func TestSQLiteStorage_ResolveRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-15", "69")))

	// Every spelling of the same station resolves to the same check digit.
	for _, input := range []string{"58-15", "5815", "3-58-15-1", "03-58-15-01"} {
		checkDigit, err := store.Resolve(ctx, 3, station.Normalize(input))
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "69", checkDigit, "input %q", input)
	}

	// Same key, different building: different physical location.
	_, err := store.Resolve(ctx, 2, station.Normalize("58-15"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ResolveNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.Resolve(context.Background(), 3, station.Normalize("01-01"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ResolveAllZeroKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// "00-00" is a real location with a real check digit, even "00".
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "00-00", "00")))

	checkDigit, err := store.Resolve(ctx, 3, station.Normalize("0000"))
	require.NoError(t, err)
	assert.Equal(t, "00", checkDigit)
}

func TestSQLiteStorage_RecordUsage(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "42")))

	// Absent record: benign no-op, no row created.
	missing := station.Normalize("12-34")
	require.NoError(t, store.RecordUsage(ctx, 3, missing))

	count, err := store.CountStations(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err := store.StationExists(ctx, 3, missing)
	require.NoError(t, err)
	assert.False(t, exists)

	// Existing record: exactly +1 per call, monotonic.
	key := station.Normalize("58-01")
	for i := 1; i <= 5; i++ {
		require.NoError(t, store.RecordUsage(ctx, 3, key))

		record, err := store.GetStation(ctx, 3, key)
		require.NoError(t, err)
		assert.Equal(t, i, record.UsageCount)
	}
}

func TestSQLiteStorage_UpsertPreservesUsageCount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "42")))

	key := station.Normalize("58-01")
	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordUsage(ctx, 3, key))
	}

	// Edit the check digit and description; the counter must survive.
	edited := testRecord(3, "58-01", "43")
	edited.Description = "end cap by the dock door"
	require.NoError(t, store.UpsertStation(ctx, edited))

	record, err := store.GetStation(ctx, 3, key)
	require.NoError(t, err)
	assert.Equal(t, "43", record.CheckDigit)
	assert.Equal(t, "end cap by the dock door", record.Description)
	assert.Equal(t, 3, record.UsageCount)
}

func TestSQLiteStorage_UpsertValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		record *model.StationRecord
		name   string
	}{
		{name: "nil record", record: nil},
		{name: "zero building", record: testRecord(0, "58-01", "42")},
		{name: "unparsed key", record: testRecord(3, "58011", "42")},
		{name: "empty check digit", record: testRecord(3, "58-01", "")},
		{name: "four digit check digit", record: testRecord(3, "58-01", "1234")},
		{name: "non numeric check digit", record: testRecord(3, "58-01", "4a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.UpsertStation(ctx, tt.record))
		})
	}

	// 1-3 digit check digits are all acceptable.
	for _, checkDigit := range []string{"4", "42", "420"} {
		assert.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", checkDigit)))
	}
}

func TestSQLiteStorage_DeleteStation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "42")))

	key := station.Normalize("58-01")
	require.NoError(t, store.DeleteStation(ctx, 3, key))
	assert.ErrorIs(t, store.DeleteStation(ctx, 3, key), common.ErrNotFound)
}

func TestSQLiteStorage_DeleteBuildingScope(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "42")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-02", "43")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(4, "58-01", "44")))

	require.NoError(t, store.DeleteBuilding(ctx, 3))

	count3, err := store.CountStations(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, count3)

	count4, err := store.CountStations(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, count4)

	require.NoError(t, store.DeleteAllStations(ctx))
	count4, err = store.CountStations(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, count4)
}

func TestSQLiteStorage_SearchStations(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cold := testRecord(3, "58-01", "42")
	cold.Description = "Cold Storage"
	require.NoError(t, store.UpsertStation(ctx, cold))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "12-34", "99")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(4, "58-02", "17")))

	// Key text match, building scoped.
	records, err := store.SearchStations(ctx, 3, "58")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "58-01", records[0].Key.String())

	// Case-insensitive description match.
	records, err = store.SearchStations(ctx, 3, "cold")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cold Storage", records[0].Description)

	// Check digit match.
	records, err = store.SearchStations(ctx, 3, "99")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12-34", records[0].Key.String())
}

func TestSQLiteStorage_StationsByAisle(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-22", "11")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "22")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "57-05", "33")))

	records, err := store.StationsByAisle(ctx, 3, "58")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "58-01", records[0].Key.String())
	assert.Equal(t, "58-22", records[1].Key.String())
}

func TestSQLiteStorage_MostUsed(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "11")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-02", "22")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-03", "33")))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordUsage(ctx, 3, station.Normalize("58-02")))
	}
	require.NoError(t, store.RecordUsage(ctx, 3, station.Normalize("58-03")))

	records, err := store.MostUsed(ctx, 3, 10)
	require.NoError(t, err)

	// Unused stations never appear in the quick list.
	require.Len(t, records, 2)
	assert.Equal(t, "58-02", records[0].Key.String())
	assert.Equal(t, "58-03", records[1].Key.String())
}

func TestSQLiteStorage_ListStationsOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-02", "22")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "58-01", "11")))
	require.NoError(t, store.UpsertStation(ctx, testRecord(3, "12-34", "33")))
	require.NoError(t, store.RecordUsage(ctx, 3, station.Normalize("58-02")))

	records, err := store.ListStations(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Usage desc first, then key asc.
	assert.Equal(t, "58-02", records[0].Key.String())
	assert.Equal(t, "12-34", records[1].Key.String())
	assert.Equal(t, "58-01", records[2].Key.String())
}
