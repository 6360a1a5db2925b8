// Package session holds loaded quiz tables for the lifetime of a user session.
package session

import (
	"errors"
	"sync"
	"time"

	"quizdb/importer"
	"quizdb/quiz"
)

// ErrNotLoaded is returned while no table has been loaded successfully.
var ErrNotLoaded = errors.New("no quiz data loaded")

// Snapshot is the loaded state of a Store at one point in time.
type Snapshot struct {
	SourceName string
	LoadedAt   time.Time
	Table      quiz.Table
}

// Store keeps one normalized table. A failed load leaves the previous table
// in place; a new successful load replaces it.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Load reads src through the importer and keeps the result on success.
func (s *Store) Load(src importer.Source, options importer.Options) (*importer.Result, error) {
	result, err := importer.Load(src, options)
	if err != nil {
		return nil, err
	}
	s.Set(result.SourceName, result.Table)
	return result, nil
}

// Set replaces the held table.
func (s *Store) Set(sourceName string, table quiz.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Snapshot{SourceName: sourceName, LoadedAt: s.now(), Table: table}
}

// Current returns the held snapshot or ErrNotLoaded.
func (s *Store) Current() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, ErrNotLoaded
	}
	return *s.current, nil
}

// Clear drops the held table, ending the session's data lifecycle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
