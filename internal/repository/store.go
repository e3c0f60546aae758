package repository

import (
	"context"
	"errors"
	"fmt"
	"sailbook/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned instead of a nil document.
	ErrNotFound = errors.New("document not found")
	// ErrConflict means the stored revision no longer matches the one the
	// caller read. The write is rejected, never merged.
	ErrConflict = errors.New("revision conflict")
)

// rawDoc is one stored document before unmarshaling.
type rawDoc struct {
	id   string
	rev  int64
	data []byte
}

// docStore is the backend contract shared by the Postgres and in-memory
// implementations. A document is a JSON blob plus a server-side revision
// counter; updates are conditional on the revision.
type docStore interface {
	get(ctx context.Context, id string) (rawDoc, error)
	insert(ctx context.Context, id string, data []byte) (int64, error)
	update(ctx context.Context, id string, rev int64, data []byte) (int64, error)
	delete(ctx context.Context, id string) error
	loadAll(ctx context.Context) ([]rawDoc, error)
	findByField(ctx context.Context, field, value string, fold bool) ([]rawDoc, error)
}

// pgStore keeps one collection in a (id uuid, rev bigint, doc jsonb) table.
type pgStore struct {
	db    *pgxpool.Pool
	table string
}

func newPgStore(db *pgxpool.Pool, table string) *pgStore {
	return &pgStore{db: db, table: table}
}

func (s *pgStore) get(ctx context.Context, id string) (rawDoc, error) {
	query := fmt.Sprintf(`SELECT rev, doc FROM %s WHERE id = $1`, s.table)
	d := rawDoc{id: id}
	err := s.db.QueryRow(ctx, query, id).Scan(&d.rev, &d.data)
	if errors.Is(err, pgx.ErrNoRows) {
		return rawDoc{}, ErrNotFound
	}
	if err != nil {
		logger.Log.Error("document fetch failed (repo)", zap.String("table", s.table), zap.Error(err))
		return rawDoc{}, err
	}
	return d, nil
}

func (s *pgStore) insert(ctx context.Context, id string, data []byte) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (id, rev, doc) VALUES ($1, 1, $2)`, s.table)
	_, err := s.db.Exec(ctx, query, id, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrConflict
		}
		logger.Log.Error("document insert failed (repo)", zap.String("table", s.table), zap.Error(err))
		return 0, err
	}
	return 1, nil
}

func (s *pgStore) update(ctx context.Context, id string, rev int64, data []byte) (int64, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET rev = rev + 1, doc = $3 WHERE id = $1 AND rev = $2 RETURNING rev`, s.table)
	var newRev int64
	err := s.db.QueryRow(ctx, query, id, rev, data).Scan(&newRev)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the document vanished or someone wrote in between.
		if _, getErr := s.get(ctx, id); errors.Is(getErr, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, ErrConflict
	}
	if err != nil {
		logger.Log.Error("document update failed (repo)", zap.String("table", s.table), zap.Error(err))
		return 0, err
	}
	return newRev, nil
}

func (s *pgStore) delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	_, err := s.db.Exec(ctx, query, id)
	if err != nil {
		logger.Log.Error("document delete failed (repo)", zap.String("table", s.table), zap.Error(err))
	}
	return err
}

func (s *pgStore) loadAll(ctx context.Context) ([]rawDoc, error) {
	query := fmt.Sprintf(`SELECT id, rev, doc FROM %s`, s.table)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("document scan failed (repo)", zap.String("table", s.table), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectDocs(rows)
}

func (s *pgStore) findByField(ctx context.Context, field, value string, fold bool) ([]rawDoc, error) {
	var query string
	if fold {
		query = fmt.Sprintf(`SELECT id, rev, doc FROM %s WHERE lower(doc->>$1) = lower($2)`, s.table)
	} else {
		query = fmt.Sprintf(`SELECT id, rev, doc FROM %s WHERE doc->>$1 = $2`, s.table)
	}
	rows, err := s.db.Query(ctx, query, field, value)
	if err != nil {
		logger.Log.Error("document query failed (repo)",
			zap.String("table", s.table), zap.String("field", field), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectDocs(rows)
}

func collectDocs(rows pgx.Rows) ([]rawDoc, error) {
	var docs []rawDoc
	for rows.Next() {
		var d rawDoc
		if err := rows.Scan(&d.id, &d.rev, &d.data); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// EnsureSchema creates the collection tables. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id uuid PRIMARY KEY,
			rev bigint NOT NULL,
			doc jsonb NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS boats (
			id uuid PRIMARY KEY,
			rev bigint NOT NULL,
			doc jsonb NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS waypoints (
			id uuid PRIMARY KEY,
			rev bigint NOT NULL,
			doc jsonb NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_name_idx ON accounts (lower(doc->>'account_name'))`,
		`CREATE INDEX IF NOT EXISTS accounts_reset_idx ON accounts ((doc->>'reset_token_hash'))`,
		`CREATE INDEX IF NOT EXISTS boats_owner_idx ON boats ((doc->>'owner'))`,
		`CREATE INDEX IF NOT EXISTS waypoints_boat_idx ON waypoints ((doc->>'boat'))`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
