// Package trackers provides tracker persistence and the create/list/delete
// operations on top of it.
package trackers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habitkeeper/internal/common"
	"habitkeeper/internal/dbx"
	"habitkeeper/internal/server/models"
)

// PostgresRepository implements tracker storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, tracker *models.Tracker) error {
	query := `
		INSERT INTO trackers (id, user_id, name, type, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.db.ExecContext(ctx, query,
		tracker.ID, tracker.UserID, tracker.Name, tracker.Type.String(),
		tracker.Description, tracker.CreatedAt, tracker.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Tracker, error) {
	query := `
		SELECT id, user_id, name, type, description, created_at, updated_at FROM trackers
		WHERE id = $1
	`
	tracker := &models.Tracker{}
	var typ string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tracker.ID, &tracker.UserID, &tracker.Name, &typ,
		&tracker.Description, &tracker.CreatedAt, &tracker.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	tracker.Type = models.TrackerType(typ)
	return tracker, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Tracker, error) {
	query := `
		SELECT id, user_id, name, type, description, created_at, updated_at FROM trackers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tracker
	for rows.Next() {
		tracker := &models.Tracker{}
		var typ string
		if err := rows.Scan(
			&tracker.ID, &tracker.UserID, &tracker.Name, &typ,
			&tracker.Description, &tracker.CreatedAt, &tracker.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tracker.Type = models.TrackerType(typ)
		result = append(result, tracker)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	// Entries cascade via the trackers FK.
	_, err := r.db.ExecContext(ctx, `DELETE FROM trackers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM trackers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
