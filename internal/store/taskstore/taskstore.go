// Package taskstore holds the ordered task list and mirrors it, in full, to
// a single key of a kv.Store on every mutation.
package taskstore

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/store/kv"
)

// Key is the storage key the snapshot lives under.
const Key = "tasks"

// Store is the in-memory task list plus its persisted mirror.
// It is not safe for concurrent use.
type Store struct {
	kv     kv.Store
	logger *log.Logger
	tasks  []string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store backed by backend. Call Load to read the
// persisted snapshot.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the snapshot and replaces the in-memory list with it. A missing,
// unreadable or malformed snapshot yields an empty list; Load never fails.
func (s *Store) Load() []string {
	s.tasks = []string{}

	raw, ok, err := s.kv.Get(Key)
	switch {
	case err != nil:
		s.logger.Warn("read snapshot", "key", Key, "err", err)
		return s.Tasks()
	case !ok:
		s.logger.Debug("no snapshot", "key", Key)
		return s.Tasks()
	}

	tasks, err := decodeSnapshot(raw)
	if err != nil {
		s.logger.Warn("malformed snapshot, starting empty", "key", Key, "err", err)
		return s.Tasks()
	}
	s.tasks = tasks
	s.logger.Debug("loaded snapshot", "key", Key, "count", len(tasks))
	return s.Tasks()
}

// Append adds text to the end of the list and persists the whole list.
func (s *Store) Append(text string) error {
	s.tasks = append(s.tasks, text)
	return s.persist()
}

// RemoveFirstMatch deletes the first task equal to text and persists the
// list. When nothing matches it returns false and writes nothing.
func (s *Store) RemoveFirstMatch(text string) (bool, error) {
	for i, t := range s.tasks {
		if t == text {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, s.persist()
		}
	}
	s.logger.Debug("remove: no match", "text", text)
	return false, nil
}

// Tasks returns a copy of the in-memory list.
func (s *Store) Tasks() []string {
	out := make([]string, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) persist() error {
	raw, err := encodeSnapshot(s.tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Set(Key, raw); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debug("persisted snapshot", "key", Key, "count", len(s.tasks))
	return nil
}
