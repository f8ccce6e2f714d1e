package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cristianoliveira/yakari/internal/history/sqlite"
	"github.com/cristianoliveira/yakari/internal/logging"
)

const (
	// BackendSQLite persists history in a SQLite database.
	BackendSQLite = "sqlite"
	// BackendMemory keeps history for the lifetime of the process only.
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown history backend")

// Store persists the history of each argument under its name.
type Store interface {
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, values []string) error
	Close() error
}

// KeyLister is implemented by stores that can enumerate their keys.
type KeyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

var (
	_ Store     = (*sqlite.Store)(nil)
	_ KeyLister = (*sqlite.Store)(nil)
	_ KeyLister = (*MemoryStore)(nil)
)

// NewForBackend creates a store for the provided backend name. path is only
// used by persistent backends.
func NewForBackend(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		s, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]string)}
}

// Get returns the values stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := m.data[key]
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}

// Set replaces the values stored under key.
func (m *MemoryStore) Set(_ context.Context, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(values) == 0 {
		delete(m.data, key)
		return nil
	}
	m.data[key] = append([]string(nil), values...)
	return nil
}

// Keys returns every key with stored values, sorted.
func (m *MemoryStore) Keys(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// Session is the history of one argument while its input prompt is open. It
// is loaded from the store when the prompt mounts and written back by Flush
// when the prompt closes.
type Session struct {
	*History
	key    string
	store  Store
	logger logging.Logger
}

// Open loads the history stored under key.
func Open(ctx context.Context, store Store, key string, maxSize int, logger logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	values, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("history: load %q: %w", key, err)
	}
	logger.Debug("history opened", "key", key, "entries", len(values))
	return &Session{
		History: FromValues(values, maxSize),
		key:     key,
		store:   store,
		logger:  logger,
	}, nil
}

// Key returns the argument name the session belongs to.
func (s *Session) Key() string { return s.key }

// Flush writes the history back to the store.
func (s *Session) Flush(ctx context.Context) error {
	if err := s.store.Set(ctx, s.key, s.Values()); err != nil {
		return fmt.Errorf("history: save %q: %w", s.key, err)
	}
	s.logger.Debug("history flushed", "key", s.key, "entries", s.Len())
	return nil
}
