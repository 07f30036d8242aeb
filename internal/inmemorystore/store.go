package inmemorystore

import (
	"context"
	"sync"

	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/specialistvlad/forgego/internal/state"
)

// Store is an in-memory implementation of state.Store. Entries are
// independent, so each concern lives in its own sync.Map and writers for
// different entries never contend on a shared lock.
type Store struct {
	states  sync.Map // entry name -> state.Status
	results sync.Map // entry name -> *registry.Result
	errors  sync.Map // entry name -> error
}

// New creates a new, empty in-memory entry state store.
func New() *Store {
	return &Store{}
}

var _ state.Store = (*Store)(nil)

// SetStatus updates the execution status of an entry.
func (s *Store) SetStatus(ctx context.Context, entry string, status state.Status) error {
	s.states.Store(entry, status)
	return nil
}

// GetStatus retrieves the execution status of an entry.
// If a status has not been set, it returns state.Pending.
func (s *Store) GetStatus(ctx context.Context, entry string) (state.Status, error) {
	status, ok := s.states.Load(entry)
	if !ok {
		return state.Pending, nil
	}
	return status.(state.Status), nil
}

// SetResult records the result of a completed entry.
func (s *Store) SetResult(ctx context.Context, entry string, res *registry.Result) error {
	s.results.Store(entry, res)
	return nil
}

// GetResult retrieves the recorded result of an entry.
func (s *Store) GetResult(ctx context.Context, entry string) (*registry.Result, error) {
	res, ok := s.results.Load(entry)
	if !ok {
		return nil, nil
	}
	return res.(*registry.Result), nil
}

// SetError records the failure of an entry.
func (s *Store) SetError(ctx context.Context, entry string, entryErr error) error {
	s.errors.Store(entry, entryErr)
	return nil
}

// GetError retrieves the recorded error of a failed entry.
func (s *Store) GetError(ctx context.Context, entry string) (error, error) {
	err, ok := s.errors.Load(entry)
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}

// Counts tallies entries by status.
func (s *Store) Counts() map[state.Status]int {
	counts := make(map[state.Status]int)
	s.states.Range(func(_, v any) bool {
		counts[v.(state.Status)]++
		return true
	})
	return counts
}
