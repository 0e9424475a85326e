package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/promptmaster/internal/client/migrations"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/secrets"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/promptmaster/internal/dbx"
	"github.com/dmitrijs2005/promptmaster/internal/filex"
	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const (
	// DatabaseFileName is the SQLite file inside the data directory.
	DatabaseFileName = "promptmaster.db"
	// LockFileName guards the data directory against a second process.
	LockFileName = ".lock"
)

// ErrDataDirLocked is returned when another client process holds the data
// directory.
var ErrDataDirLocked = errors.New("data directory is used by another process")

// Repositories groups the local store repositories.
type Repositories struct {
	Metadata metadata.Repository
	Secrets  secrets.Repository
	Sessions sessions.Repository
}

// Store is an opened, locked and migrated local data directory.
type Store struct {
	Repositories
	DB *sql.DB

	lock *flock.Flock
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewRepositories binds the SQLite repositories to db.
func NewRepositories(db dbx.DBTX) Repositories {
	return Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Secrets:  secrets.NewSQLiteRepository(db),
		Sessions: sessions.NewSQLiteRepository(db),
	}
}

// OpenStore creates dataDir when needed, takes an exclusive lock on it and
// opens the migrated database inside.
func OpenStore(ctx context.Context, dataDir string) (*Store, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock data directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDataDirLocked, dir)
	}

	db, err := InitDatabase(ctx, filepath.Join(dir, DatabaseFileName))
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("init database: %w", err)
	}

	return &Store{Repositories: NewRepositories(db), DB: db, lock: lock}, nil
}

// Contents lists what the local store holds.
type Contents struct {
	Session  bool
	Secrets  []string
	Metadata []string
}

// Empty reports whether nothing is stored.
func (c Contents) Empty() bool {
	return !c.Session && len(c.Secrets) == 0 && len(c.Metadata) == 0
}

// Contents reports the stored session flag, secret names and metadata keys.
func (s *Store) Contents(ctx context.Context) (Contents, error) {
	var c Contents

	blob, err := s.Sessions.Load(ctx)
	if err != nil {
		return c, err
	}
	c.Session = blob != ""

	if c.Secrets, err = s.Secrets.Names(ctx); err != nil {
		return c, err
	}
	if c.Metadata, err = s.Metadata.Keys(ctx); err != nil {
		return c, err
	}
	return c, nil
}

// Wipe removes the session, the secrets and the key material in one
// transaction.
func (s *Store) Wipe(ctx context.Context) error {
	return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repos := NewRepositories(tx)
		if err := repos.Sessions.Delete(ctx); err != nil {
			return err
		}
		if err := repos.Secrets.Clear(ctx); err != nil {
			return err
		}
		return repos.Metadata.Clear(ctx)
	})
}

// Close closes the database and releases the directory lock.
func (s *Store) Close() error {
	dbErr := s.DB.Close()
	lockErr := s.lock.Unlock()
	return errors.Join(dbErr, lockErr)
}
