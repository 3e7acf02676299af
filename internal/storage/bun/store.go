// Package bunstore persists fetched variables in a per-credential SQLite
// database. It is the durable side of the fallback cache: entries written
// here survive process restarts and remote outages.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goliatone/go-envbee/pkg/interfaces/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const dbFileName = "variables.db"

type variableRecord struct {
	bun.BaseModel `bun:"table:variables"`

	ID        int64     `bun:",pk,autoincrement"`
	Name      string    `bun:",notnull,unique"`
	Value     string    `bun:",notnull"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Store implements cache.Store on top of a bun-managed SQLite database.
type Store struct {
	db *bun.DB
}

var _ cache.Store = (*Store)(nil)

// Open creates or opens the variables database inside dir and ensures the
// schema exists. SQLite handles cross-process concurrency on its own.
func Open(dir string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.DriverName(), filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("bunstore: open sqlite: %w", err)
	}
	store := NewStore(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an existing bun database. Callers owning the connection
// should run Init before first use.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Init creates the variables table when missing.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*variableRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: create table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var rec variableRecord
	err := s.db.NewSelect().
		Model(&rec).
		Where("name = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	rec := &variableRecord{Name: key, Value: value}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	return err
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.NewSelect().
		Model((*variableRecord)(nil)).
		Column("name").
		Scan(ctx, &names)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
