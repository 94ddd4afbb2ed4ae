package ledger

import (
	"context"
	"errors"
	"sync"
)

const (
	logMsgStoreRecovered = "corrupt store content replaced by empty store"
	logMsgLoadFailed     = "loading store content failed"
	logMsgSaveFailed     = "saving store content failed"
	logAttrError         = "error"
)

// store carries the plumbing shared by all three entity stores: the
// persistence backend, an optional logger, and the mutex that enforces the
// single-writer-at-a-time contract. Every exported store operation performs
// a full read-modify-write cycle under this mutex; concurrent callers are
// serialized, never interleaved.
type store struct {
	backend Backend
	logger  Logger
	mu      sync.Mutex
}

// storeConfig collects the optional store dependencies.
type storeConfig struct {
	logger Logger
	ids    IDGenerator
}

// Option defines a functional option for configuring a store.
type Option func(*storeConfig) error

// WithLogger sets the logger for a store.
func WithLogger(logger Logger) Option {
	return func(c *storeConfig) error {
		c.logger = logger
		return nil
	}
}

// WithIDGenerator sets the identifier generator used by a ReservationStore.
// Other stores ignore it.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *storeConfig) error {
		c.ids = ids
		return nil
	}
}

func buildStoreConfig(options []Option) (storeConfig, error) {
	cfg := storeConfig{}

	for _, option := range options {
		if err := option(&cfg); err != nil {
			return storeConfig{}, err
		}
	}

	return cfg, nil
}

// load fetches the complete mapping from the backend. A backend that
// recovered from corrupt content already returned an empty mapping; this is
// surfaced as a warning, not an error.
func (s *store) load(ctx context.Context) (Documents, error) {
	docs, recovered, err := s.backend.Load(ctx)
	if err != nil {
		s.logError(logMsgLoadFailed, logAttrError, err.Error())
		return nil, errors.Join(ErrLoadingStoreFailed, err)
	}

	if recovered {
		s.logWarn(logMsgStoreRecovered)
	}

	if docs == nil {
		docs = Documents{}
	}

	return docs, nil
}

// save writes the complete mapping back to the backend.
func (s *store) save(ctx context.Context, docs Documents) error {
	if err := s.backend.Save(ctx, docs); err != nil {
		s.logError(logMsgSaveFailed, logAttrError, err.Error())
		return errors.Join(ErrSavingStoreFailed, err)
	}

	return nil
}

func (s *store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
