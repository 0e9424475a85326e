package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (string, error) {
	var blob string
	err := r.db.QueryRowContext(ctx, `select blob from sessions where id=1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return blob, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, blob string) error {
	query := `INSERT INTO sessions (id, blob, updated_at) values (1, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, blob); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from sessions`); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
