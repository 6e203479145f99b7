package jsonstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/oklog/ulid/v2"

	"github.com/idilsaglam/matters/internal/model"
)

// JSON-backed storage. One file per namespace, human-readable, portable.
// No locking; a single writer owns the file while the app runs.

// Store keeps every record of one namespace in <Dir>/<Namespace>.json.
type Store struct {
	Dir       string
	Namespace string
}

var _ model.Store = (*Store)(nil)

// New returns a Store for namespace under dir, creating dir if needed.
func New(dir, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, errors.New("jsonstore: empty namespace")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{Dir: dir, Namespace: namespace}, nil
}

func (s *Store) dataPath() string {
	return filepath.Join(s.Dir, s.Namespace+".json")
}

func (s *Store) load() (map[string]model.Record, error) {
	b, err := os.ReadFile(s.dataPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]model.Record{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	recs := map[string]model.Record{}
	if len(b) == 0 {
		return recs, nil
	}
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return recs, nil
}

func (s *Store) save(recs map[string]model.Record) error {
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.dataPath() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.dataPath()); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// FetchAll returns the namespace's records sorted by id, which is creation
// order for ids this store assigned.
func (s *Store) FetchAll(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(recs))
	for id, r := range recs {
		r.ID = id
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b model.Record) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) Insert(ctx context.Context, r model.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	recs, err := s.load()
	if err != nil {
		return "", err
	}
	r.ID = ulid.Make().String()
	recs[r.ID] = r
	if err := s.save(recs); err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, r model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recs, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := recs[id]; !ok {
		return fmt.Errorf("update %s: %w", id, model.ErrNotFound)
	}
	r.ID = id
	recs[id] = r
	return s.save(recs)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recs, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := recs[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, model.ErrNotFound)
	}
	delete(recs, id)
	return s.save(recs)
}
