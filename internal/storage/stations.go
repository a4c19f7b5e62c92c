package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

const stationColumns = `building_id, station_key, check_digit, description, usage_count, last_updated`

// Resolve returns the check digit for a station in a building. A missing
// record is reported as common.ErrNotFound, never as a generic failure.
func (s *SQLiteStorage) Resolve(ctx context.Context, buildingID int, key model.StationKey) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateBuilding(buildingID); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	var checkDigit string
	err := s.db.QueryRowContext(ctx, `
		SELECT check_digit FROM stations
		WHERE building_id = ? AND station_key = ?
	`, buildingID, key.String()).Scan(&checkDigit)

	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve station: %w", err)
	}

	return checkDigit, nil
}

// RecordUsage increments the usage counter for an existing station. Absent
// records are left alone; usage tracking never creates rows as a side
// effect. An occasional lost increment under concurrent lookups is fine.
func (s *SQLiteStorage) RecordUsage(ctx context.Context, buildingID int, key model.StationKey) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBuilding(buildingID); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE stations SET usage_count = usage_count + 1
		WHERE building_id = ? AND station_key = ?
	`, buildingID, key.String())
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", markRetryable(err))
	}

	return nil
}

// StationExists reports whether a station record exists.
func (s *SQLiteStorage) StationExists(ctx context.Context, buildingID int, key model.StationKey) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return false, err
	}
	if err := validateKey(key); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM stations WHERE building_id = ? AND station_key = ?)
	`, buildingID, key.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check station existence: %w", err)
	}

	return exists, nil
}

// UpsertStation inserts a new station or replaces an existing one. Editing
// the check digit or description of an existing record keeps its usage
// count; the counter is only zeroed by an explicit building wipe.
func (s *SQLiteStorage) UpsertStation(ctx context.Context, record *model.StationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stations (building_id, station_key, check_digit, description, usage_count, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(building_id, station_key) DO UPDATE SET
			check_digit = excluded.check_digit,
			description = excluded.description,
			last_updated = excluded.last_updated
	`, record.BuildingID, record.Key.String(), record.CheckDigit, record.Description, record.UsageCount, record.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert station: %w", markRetryable(err))
	}

	return nil
}

// GetStation retrieves a full station record.
func (s *SQLiteStorage) GetStation(ctx context.Context, buildingID int, key model.StationKey) (*model.StationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE building_id = ? AND station_key = ?
	`, buildingID, key.String())

	record, err := scanStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}

	return record, nil
}

// DeleteStation removes a single station record.
func (s *SQLiteStorage) DeleteStation(ctx context.Context, buildingID int, key model.StationKey) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBuilding(buildingID); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM stations WHERE building_id = ? AND station_key = ?
	`, buildingID, key.String())
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteBuilding removes all station records for one building.
func (s *SQLiteStorage) DeleteBuilding(ctx context.Context, buildingID int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBuilding(buildingID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM stations WHERE building_id = ?
	`, buildingID); err != nil {
		return fmt.Errorf("failed to delete building stations: %w", err)
	}

	return nil
}

// DeleteAllStations wipes the station table across every building.
func (s *SQLiteStorage) DeleteAllStations(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("failed to delete all stations: %w", err)
	}

	return nil
}

// ListStations returns a building's stations in the default read-model
// order: most used first, then key ascending.
func (s *SQLiteStorage) ListStations(ctx context.Context, buildingID int) ([]model.StationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}

	return s.queryStations(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE building_id = ?
		ORDER BY usage_count DESC, station_key ASC
	`, buildingID)
}

// SearchStations matches the query case-insensitively against key text,
// description, and check digit.
func (s *SQLiteStorage) SearchStations(ctx context.Context, buildingID int, query string) ([]model.StationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	return s.queryStations(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE building_id = ?
		  AND (station_key LIKE ? OR description LIKE ? COLLATE NOCASE OR check_digit LIKE ?)
		ORDER BY usage_count DESC, station_key ASC
	`, buildingID, pattern, pattern, pattern)
}

// StationsByAisle returns every station in one aisle, sorted by position.
func (s *SQLiteStorage) StationsByAisle(ctx context.Context, buildingID int, aisle string) ([]model.StationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}
	if err := validateString(aisle, "aisle"); err != nil {
		return nil, err
	}

	return s.queryStations(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE building_id = ? AND station_key LIKE ?
		ORDER BY station_key ASC
	`, buildingID, aisle+"-%")
}

// MostUsed returns records with a positive usage count, most used first.
func (s *SQLiteStorage) MostUsed(ctx context.Context, buildingID int, limit int) ([]model.StationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	return s.queryStations(ctx, `
		SELECT `+stationColumns+` FROM stations
		WHERE building_id = ? AND usage_count > 0
		ORDER BY usage_count DESC, station_key ASC
		LIMIT ?
	`, buildingID, limit)
}

// CountStations returns the number of records for a building.
func (s *SQLiteStorage) CountStations(ctx context.Context, buildingID int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM stations WHERE building_id = ?
	`, buildingID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stations: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) queryStations(ctx context.Context, query string, args ...any) ([]model.StationRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.StationRecord
	for rows.Next() {
		record, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStation(row scanner) (*model.StationRecord, error) {
	var record model.StationRecord
	var keyText string
	var description sql.NullString

	if err := row.Scan(
		&record.BuildingID,
		&keyText,
		&record.CheckDigit,
		&description,
		&record.UsageCount,
		&record.LastUpdated,
	); err != nil {
		return nil, err
	}

	record.Key = station.Normalize(keyText)
	record.Description = description.String

	return &record, nil
}
