// Package sqlitestore persists matters in a local SQLite file. Several
// namespaces can share one file; each Store only ever sees its own rows.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/matters/internal/model"
)

const fileName = "matters.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS matters (
	namespace TEXT NOT NULL,
	id        TEXT NOT NULL,
	title     TEXT NOT NULL,
	ord       INTEGER NOT NULL,
	date      TEXT NOT NULL,
	reply     TEXT NOT NULL DEFAULT '[]',
	done      INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (namespace, id)
);
CREATE INDEX IF NOT EXISTS matters_ns_ord ON matters(namespace, ord);
`

type Store struct {
	db        *sql.DB
	namespace string
}

var _ model.Store = (*Store)(nil)

// Open opens (and migrates) <dir>/matters.sqlite scoped to namespace.
func Open(ctx context.Context, dir, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, errors.New("sqlitestore: empty namespace")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, fileName))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, namespace: namespace}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) FetchAll(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, ord, date, reply, done FROM matters WHERE namespace = ? ORDER BY id`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var (
			r     model.Record
			reply string
			done  int
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Order, &r.Date, &reply, &done); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if err := json.Unmarshal([]byte(reply), &r.Reply); err != nil {
			return nil, fmt.Errorf("decode reply of %s: %w", r.ID, err)
		}
		r.Done = done != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, r model.Record) (string, error) {
	reply, err := encodeReply(r.Reply)
	if err != nil {
		return "", err
	}
	id := ulid.Make().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO matters(namespace, id, title, ord, date, reply, done) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		s.namespace, id, r.Title, r.Order, r.Date, reply, boolInt(r.Done))
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, r model.Record) error {
	reply, err := encodeReply(r.Reply)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE matters SET title = ?, ord = ?, date = ?, reply = ?, done = ? WHERE namespace = ? AND id = ?`,
		r.Title, r.Order, r.Date, reply, boolInt(r.Done), s.namespace, id)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return expectOne(res, "update", id)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matters WHERE namespace = ? AND id = ?`, s.namespace, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return expectOne(res, "remove", id)
}

func expectOne(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, model.ErrNotFound)
	}
	return nil
}

func encodeReply(reply []model.Reply) (string, error) {
	if reply == nil {
		reply = []model.Reply{}
	}
	b, err := json.Marshal(reply)
	if err != nil {
		return "", fmt.Errorf("encode reply: %w", err)
	}
	return string(b), nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
