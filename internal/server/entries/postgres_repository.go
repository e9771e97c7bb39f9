// Package entries provides entry persistence and the add/update/delete
// operations on top of it.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habitkeeper/internal/common"
	"habitkeeper/internal/dbx"
	"habitkeeper/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX. The
// polymorphic value is spread over per-type columns (bool_value, num_value,
// text_value, int_value); the owning tracker's type, joined on read, decides
// which column is live.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, entry *models.Entry) error {
	boolVal, numVal, textVal, intVal := splitValue(entry.Value)

	query := `
		INSERT INTO entries (id, tracker_id, bool_value, num_value, text_value, int_value, recorded_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET
			bool_value = EXCLUDED.bool_value,
			num_value = EXCLUDED.num_value,
			text_value = EXCLUDED.text_value,
			int_value = EXCLUDED.int_value,
			recorded_at = EXCLUDED.recorded_at,
			note = EXCLUDED.note;
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.TrackerID, boolVal, numVal, textVal, intVal,
		entry.RecordedAt, entry.Note, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectEntry = `
	SELECT e.id, e.tracker_id, t.type, e.bool_value, e.num_value, e.text_value, e.int_value, e.recorded_at, e.note, e.created_at
	FROM entries e
	JOIN trackers t ON t.id = e.tracker_id
`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, selectEntry+` WHERE e.id = $1`, id)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *PostgresRepository) FindByTrackerID(ctx context.Context, trackerID string) ([]*models.Entry, error) {
	query := selectEntry + ` WHERE e.tracker_id = $1 ORDER BY e.recorded_at DESC`
	return r.queryEntries(ctx, query, trackerID)
}

func (r *PostgresRepository) FindByTrackerIDAndDateRange(ctx context.Context, trackerID string, start, end time.Time) ([]*models.Entry, error) {
	query := selectEntry + `
		WHERE e.tracker_id = $1 AND e.recorded_at >= $2 AND e.recorded_at <= $3
		ORDER BY e.recorded_at DESC`
	return r.queryEntries(ctx, query, trackerID, start, end)
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM entries WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) CountByTrackerID(ctx context.Context, trackerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE tracker_id = $1`, trackerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// splitValue maps an EntryValue onto the per-type columns; all but the
// active one stay NULL.
func splitValue(v models.EntryValue) (boolVal sql.NullBool, numVal sql.NullFloat64, textVal sql.NullString, intVal sql.NullInt64) {
	switch v.Type() {
	case models.TypeBoolean:
		boolVal = sql.NullBool{Bool: v.Bool(), Valid: true}
	case models.TypeNumber:
		numVal = sql.NullFloat64{Float64: v.Number(), Valid: true}
	case models.TypeText:
		textVal = sql.NullString{String: v.Text(), Valid: true}
	case models.TypeDuration:
		intVal = sql.NullInt64{Int64: v.Minutes(), Valid: true}
	case models.TypeCurrency:
		intVal = sql.NullInt64{Int64: v.Cents(), Valid: true}
	}
	return boolVal, numVal, textVal, intVal
}

func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	var (
		entry   models.Entry
		typ     string
		boolVal sql.NullBool
		numVal  sql.NullFloat64
		textVal sql.NullString
		intVal  sql.NullInt64
	)
	if err := scan(&entry.ID, &entry.TrackerID, &typ, &boolVal, &numVal, &textVal, &intVal,
		&entry.RecordedAt, &entry.Note, &entry.CreatedAt); err != nil {
		return nil, err
	}

	value, err := buildValue(entry.ID, models.TrackerType(typ), boolVal, numVal, textVal, intVal)
	if err != nil {
		return nil, err
	}
	entry.Value = value
	return &entry, nil
}

// buildValue reconstructs the tagged value from the row columns. A NULL in
// the column the tracker type selects means the row is corrupt.
func buildValue(entryID string, typ models.TrackerType, boolVal sql.NullBool, numVal sql.NullFloat64, textVal sql.NullString, intVal sql.NullInt64) (models.EntryValue, error) {
	switch typ {
	case models.TypeBoolean:
		if !boolVal.Valid {
			return models.EntryValue{}, fmt.Errorf("entry %s has NULL bool_value for BOOLEAN tracker", entryID)
		}
		return models.NewBooleanValue(boolVal.Bool), nil
	case models.TypeNumber:
		if !numVal.Valid {
			return models.EntryValue{}, fmt.Errorf("entry %s has NULL num_value for NUMBER tracker", entryID)
		}
		return models.NewNumberValue(numVal.Float64, 0)
	case models.TypeText:
		if !textVal.Valid {
			return models.EntryValue{}, fmt.Errorf("entry %s has NULL text_value for TEXT tracker", entryID)
		}
		return models.NewTextValue(textVal.String), nil
	case models.TypeDuration:
		if !intVal.Valid {
			return models.EntryValue{}, fmt.Errorf("entry %s has NULL int_value for DURATION tracker", entryID)
		}
		return models.NewDurationValue(intVal.Int64), nil
	case models.TypeCurrency:
		if !intVal.Valid {
			return models.EntryValue{}, fmt.Errorf("entry %s has NULL int_value for CURRENCY tracker", entryID)
		}
		return models.NewCurrencyValue(intVal.Int64), nil
	default:
		return models.EntryValue{}, fmt.Errorf("entry %s has unknown tracker type %q", entryID, typ)
	}
}
