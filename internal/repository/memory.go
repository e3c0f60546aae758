package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// memStore is the in-memory docStore double. Same contract as pgStore,
// including ErrNotFound and the revision-conflict rule, so tests and
// DB_DRIVER=memory exercise the exact store semantics.
type memStore struct {
	mu   sync.Mutex
	docs map[string]rawDoc
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]rawDoc)}
}

func (s *memStore) get(_ context.Context, id string) (rawDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return rawDoc{}, ErrNotFound
	}
	return d, nil
}

func (s *memStore) insert(_ context.Context, id string, data []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; ok {
		return 0, ErrConflict
	}
	s.docs[id] = rawDoc{id: id, rev: 1, data: append([]byte(nil), data...)}
	return 1, nil
}

func (s *memStore) update(_ context.Context, id string, rev int64, data []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return 0, ErrNotFound
	}
	if d.rev != rev {
		return 0, ErrConflict
	}
	d.rev++
	d.data = append([]byte(nil), data...)
	s.docs[id] = d
	return d.rev, nil
}

func (s *memStore) delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *memStore) loadAll(_ context.Context) ([]rawDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []rawDoc
	for _, d := range s.docs {
		out = append(out, d)
	}
	return out, nil
}

func (s *memStore) findByField(_ context.Context, field, value string, fold bool) ([]rawDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []rawDoc
	for _, d := range s.docs {
		var m map[string]interface{}
		if err := json.Unmarshal(d.data, &m); err != nil {
			continue
		}
		v, ok := m[field].(string)
		if !ok {
			continue
		}
		if fold {
			if strings.EqualFold(v, value) {
				out = append(out, d)
			}
		} else if v == value {
			out = append(out, d)
		}
	}
	return out, nil
}
