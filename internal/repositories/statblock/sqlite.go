package statblock

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS statblocks (
	key      TEXT PRIMARY KEY,
	seq      INTEGER NOT NULL,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	data     BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS statblocks_seq ON statblocks (seq);`

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository stores stat blocks in a single SQLite table
type SQLiteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite stat block repository
type SQLiteConfig struct {
	Path string
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", cfg.Path, vb)
	return vb.Build()
}

// NewSQLite opens the database at cfg.Path and creates the schema if needed
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(strings.TrimSpace(cfg.Path)) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach sqlite database")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create sqlite schema")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get implements Repository
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	key, err := keyFor(input.Name)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = r.db.QueryRowContext(ctx, `SELECT data FROM statblocks WHERE key = ?`, key).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf(errNotFoundFm, input.Name).WithMeta("name", input.Name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stat block")
	}

	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

// Put implements Repository
func (r *SQLiteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	key, data, err := encodeForPut(input.Record)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statblocks WHERE key = ?`, key).Scan(&existing); err != nil {
		return nil, errors.Wrap(err, "failed to check existing stat block")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO statblocks (key, seq, name, category, data)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM statblocks), ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   seq = (SELECT COALESCE(MAX(seq), 0) + 1 FROM statblocks),
		   name = excluded.name,
		   category = excluded.category,
		   data = excluded.data`,
		key,
		strings.TrimSpace(input.Record.Name.String()),
		input.Record.Category.String(),
		data,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store stat block")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit stat block")
	}

	slog.DebugContext(ctx, "stored stat block", "key", key, "replaced", existing > 0)

	return &PutOutput{Record: input.Record, Replaced: existing > 0}, nil
}

// Delete implements Repository
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := keyFor(input.Name)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM statblocks WHERE key = ?`, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete stat block")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete stat block")
	}
	if n == 0 {
		return nil, errors.NotFoundf(errNotFoundFm, input.Name).WithMeta("name", input.Name)
	}

	return &DeleteOutput{}, nil
}

// List implements Repository
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM statblocks ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stat blocks")
	}
	defer func() { _ = rows.Close() }()

	records := []*entity.Record{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "failed to scan stat block")
		}
		record, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list stat blocks")
	}

	return &ListOutput{Records: records}, nil
}
