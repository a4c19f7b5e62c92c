package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

// SaveAssignment persists a new pending pallet task. The caller is expected
// to have normalized the destination already; Destination.Validate enforces
// canonical form here.
func (s *SQLiteStorage) SaveAssignment(ctx context.Context, assignment *model.Assignment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAssignment(assignment); err != nil {
		return err
	}

	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (building_id, destination, notes, delivered, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, assignment.BuildingID, assignment.Destination.String(), assignment.Notes, assignment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get assignment id: %w", err)
	}
	assignment.ID = id

	return nil
}

// ListAssignments returns a building's tasks, pending first, oldest first.
func (s *SQLiteStorage) ListAssignments(ctx context.Context, buildingID int, includeDelivered bool) ([]model.Assignment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBuilding(buildingID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, building_id, destination, notes, delivered, delivered_at, created_at
		FROM assignments
		WHERE building_id = ?`
	if !includeDelivered {
		query += ` AND delivered = 0`
	}
	query += ` ORDER BY delivered ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var destination string
		var notes sql.NullString
		var deliveredAt sql.NullTime

		if err := rows.Scan(&a.ID, &a.BuildingID, &destination, &notes, &a.Delivered, &deliveredAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		a.Destination = station.Normalize(destination)
		a.Notes = notes.String
		if deliveredAt.Valid {
			t := deliveredAt.Time
			a.DeliveredAt = &t
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// MarkDelivered flags an assignment as completed.
func (s *SQLiteStorage) MarkDelivered(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE assignments SET delivered = 1, delivered_at = ?
		WHERE id = ? AND delivered = 0
	`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark assignment delivered: %w", err)
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

// DeleteAssignment removes a task entirely.
func (s *SQLiteStorage) DeleteAssignment(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM assignments WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
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
