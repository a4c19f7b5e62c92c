// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
)

type stationID struct {
	key      string
	building int
}

// MockStorage is an in-memory Storage implementation for tests. ResolveDelay
// and ResolveHook make lookup-ordering scenarios reproducible.
type MockStorage struct {
	// ResolveHook, if set, runs at the start of every Resolve call.
	ResolveHook func(buildingID int, key model.StationKey)
	// UpsertHook, if set, runs before every UpsertStation write; a non-nil
	// return becomes the write's error.
	UpsertHook func(record *model.StationRecord) error
	// ResolveDelay stalls Resolve to simulate a slow lookup.
	ResolveDelay time.Duration

	stations    map[stationID]*model.StationRecord
	assignments map[int64]*model.Assignment
	nextID      int64
	mu          sync.Mutex
}

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		stations:    make(map[stationID]*model.StationRecord),
		assignments: make(map[int64]*model.Assignment),
	}
}

func (m *MockStorage) id(buildingID int, key model.StationKey) stationID {
	return stationID{building: buildingID, key: key.String()}
}

// Resolve returns the check digit for a station.
func (m *MockStorage) Resolve(ctx context.Context, buildingID int, key model.StationKey) (string, error) {
	if m.ResolveHook != nil {
		m.ResolveHook(buildingID, key)
	}
	if m.ResolveDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.ResolveDelay):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.stations[m.id(buildingID, key)]
	if !ok {
		return "", common.ErrNotFound
	}
	return record.CheckDigit, nil
}

// RecordUsage increments usage for an existing station; absent is a no-op.
func (m *MockStorage) RecordUsage(_ context.Context, buildingID int, key model.StationKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.stations[m.id(buildingID, key)]; ok {
		record.UsageCount++
	}
	return nil
}

// StationExists reports record presence.
func (m *MockStorage) StationExists(_ context.Context, buildingID int, key model.StationKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stations[m.id(buildingID, key)]
	return ok, nil
}

// UpsertStation inserts or replaces, preserving usage count on replace.
func (m *MockStorage) UpsertStation(_ context.Context, record *model.StationRecord) error {
	if m.UpsertHook != nil {
		if err := m.UpsertHook(record); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id(record.BuildingID, record.Key)
	clone := *record
	if existing, ok := m.stations[id]; ok {
		clone.UsageCount = existing.UsageCount
	}
	if clone.LastUpdated.IsZero() {
		clone.LastUpdated = time.Now()
	}
	m.stations[id] = &clone
	return nil
}

// GetStation retrieves a record.
func (m *MockStorage) GetStation(_ context.Context, buildingID int, key model.StationKey) (*model.StationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.stations[m.id(buildingID, key)]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

// DeleteStation removes one record.
func (m *MockStorage) DeleteStation(_ context.Context, buildingID int, key model.StationKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id(buildingID, key)
	if _, ok := m.stations[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.stations, id)
	return nil
}

// DeleteBuilding removes all records in a building.
func (m *MockStorage) DeleteBuilding(_ context.Context, buildingID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.stations {
		if id.building == buildingID {
			delete(m.stations, id)
		}
	}
	return nil
}

// DeleteAllStations wipes everything.
func (m *MockStorage) DeleteAllStations(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations = make(map[stationID]*model.StationRecord)
	return nil
}

// ListStations lists a building's records, usage desc then key asc.
func (m *MockStorage) ListStations(_ context.Context, buildingID int) ([]model.StationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []model.StationRecord
	for id, record := range m.stations {
		if id.building == buildingID {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UsageCount != records[j].UsageCount {
			return records[i].UsageCount > records[j].UsageCount
		}
		return records[i].Key.String() < records[j].Key.String()
	})
	return records, nil
}

// SearchStations is unsupported in the mock; tests that need it use SQLite.
func (m *MockStorage) SearchStations(_ context.Context, _ int, _ string) ([]model.StationRecord, error) {
	return nil, nil
}

// StationsByAisle is unsupported in the mock; tests that need it use SQLite.
func (m *MockStorage) StationsByAisle(_ context.Context, _ int, _ string) ([]model.StationRecord, error) {
	return nil, nil
}

// MostUsed returns up to limit records with positive usage.
func (m *MockStorage) MostUsed(ctx context.Context, buildingID int, limit int) ([]model.StationRecord, error) {
	records, _ := m.ListStations(ctx, buildingID)
	var used []model.StationRecord
	for _, record := range records {
		if record.UsageCount > 0 {
			used = append(used, record)
		}
	}
	if len(used) > limit {
		used = used[:limit]
	}
	return used, nil
}

// CountStations counts a building's records.
func (m *MockStorage) CountStations(_ context.Context, buildingID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id := range m.stations {
		if id.building == buildingID {
			count++
		}
	}
	return count, nil
}

// SaveAssignment stores a new assignment.
func (m *MockStorage) SaveAssignment(_ context.Context, assignment *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	assignment.ID = m.nextID
	clone := *assignment
	m.assignments[clone.ID] = &clone
	return nil
}

// ListAssignments lists a building's assignments.
func (m *MockStorage) ListAssignments(_ context.Context, buildingID int, includeDelivered bool) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var assignments []model.Assignment
	for _, a := range m.assignments {
		if a.BuildingID != buildingID {
			continue
		}
		if a.Delivered && !includeDelivered {
			continue
		}
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

// MarkDelivered flags an assignment delivered.
func (m *MockStorage) MarkDelivered(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok || a.Delivered {
		return common.ErrNotFound
	}
	now := time.Now()
	a.Delivered = true
	a.DeliveredAt = &now
	return nil
}

// DeleteAssignment removes an assignment.
func (m *MockStorage) DeleteAssignment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.assignments, id)
	return nil
}

// Migrate is a no-op.
func (m *MockStorage) Migrate(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MockStorage) Close() error { return nil }
