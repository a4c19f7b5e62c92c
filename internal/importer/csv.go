// Package importer loads station check-digit tables from delimited files.
//
// The source format is the one the operator maintains by hand: a header row,
// then one row per station of `building?, station, check digit[, description]`.
// Individual bad rows are collected and reported; they never abort the batch.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/morrisraybrooks/PalletManager/internal/common"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/service"
	"github.com/morrisraybrooks/PalletManager/internal/station"
)

// RowError describes one skipped row.
type RowError struct {
	Reason string
	Line   int
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result summarizes a completed import batch.
type Result struct {
	Failures []RowError
	Imported int
	Skipped  int
}

// ProgressFunc receives the number of rows processed so far.
type ProgressFunc func(processed int)

// Importer reads station rows and upserts them through storage.
type Importer struct {
	storage  service.Storage
	progress ProgressFunc
	retry    service.RetryOptions

	// DefaultBuilding is used for rows without a building column.
	DefaultBuilding int

	// DryRun parses and validates rows without writing anything.
	DryRun bool
}

// New creates an Importer writing to the given storage. Row writes are
// retried briefly, since a bulk import is exactly when another process
// holding the database file locked is most disruptive.
func New(storage service.Storage, defaultBuilding int) *Importer {
	return &Importer{
		storage:         storage,
		DefaultBuilding: defaultBuilding,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 25 * time.Millisecond,
			MaxDelay:     time.Second,
		},
	}
}

// OnProgress registers a callback invoked after each data row.
func (i *Importer) OnProgress(fn ProgressFunc) {
	i.progress = fn
}

// Import reads CSV data and upserts each row independently. The header row
// is skipped. An empty source (no data rows at all) is an error, distinct
// from a batch where every row already existed.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &Result{}
	line := 0
	sawHeader := false

	for {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", common.ErrImportAborted, ctx.Err())
		default:
		}

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Failures = append(result.Failures, RowError{Line: line, Reason: err.Error()})
			i.report(result)
			continue
		}

		if !sawHeader {
			sawHeader = true
			continue
		}

		if rowErr := i.importRow(ctx, line, fields); rowErr != nil {
			result.Skipped++
			result.Failures = append(result.Failures, *rowErr)
		} else {
			result.Imported++
		}
		i.report(result)
	}

	if !sawHeader || line <= 1 {
		return result, common.ErrEmptyImport
	}

	common.LogInfo("Import complete", common.Fields{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})

	return result, nil
}

func (i *Importer) importRow(ctx context.Context, line int, fields []string) *RowError {
	for idx := range fields {
		fields[idx] = strings.TrimSpace(fields[idx])
	}

	buildingID := i.DefaultBuilding

	// A leading one- or two-digit field is the optional building column;
	// station key text is always at least three characters.
	if len(fields) >= 3 && len(fields[0]) <= 2 {
		if b, err := strconv.Atoi(fields[0]); err == nil {
			buildingID = b
			fields = fields[1:]
		}
	}

	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return &RowError{Line: line, Reason: "need at least station and check digit"}
	}

	keyText, checkDigit := fields[0], fields[1]
	description := ""
	if len(fields) > 2 {
		description = fields[2]
	}

	if !station.Classify(keyText).Resolvable() {
		return &RowError{Line: line, Reason: fmt.Sprintf("unrecognized station format %q", keyText)}
	}

	record := &model.StationRecord{
		BuildingID:  buildingID,
		Key:         station.Normalize(keyText),
		CheckDigit:  checkDigit,
		Description: description,
	}

	if i.DryRun {
		return nil
	}

	err := common.WithRetry(ctx, func() error {
		return i.storage.UpsertStation(ctx, record)
	}, i.retry)
	if err != nil {
		return &RowError{Line: line, Reason: err.Error()}
	}

	return nil
}

func (i *Importer) report(result *Result) {
	if i.progress != nil {
		i.progress(result.Imported + result.Skipped)
	}
}
