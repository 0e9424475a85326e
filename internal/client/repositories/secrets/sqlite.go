package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (string, error) {
	var blob string
	err := r.db.QueryRowContext(ctx, `select blob from secrets where name=?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get secret[%s]: %w", name, err)
	}
	return blob, nil
}

// Set upserts a secret by name and bumps updated_at.
func (r *SQLiteRepository) Set(ctx context.Context, name, blob string) error {
	query := `INSERT INTO secrets (name, blob, updated_at)
			values (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(name) DO UPDATE SET blob = excluded.blob,
				updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, name, blob); err != nil {
		return fmt.Errorf("failed to upsert secret[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `delete from secrets where name=?`, name); err != nil {
		return fmt.Errorf("failed to delete secret[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `select name from secrets order by name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select secrets: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from secrets`); err != nil {
		return fmt.Errorf("failed to clear secrets: %w", err)
	}
	return nil
}
