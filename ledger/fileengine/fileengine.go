package fileengine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/hotelops/reservation-ledger-go/ledger"
)

const (
	fileMode      = 0o644
	dirMode       = 0o755
	indent        = "  "
	logMsgCorrupt = "store file is corrupt, using empty store"
	logAttrPath   = "path"
	logAttrError  = "error"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrEmptyPathSupplied = errors.New("empty file path supplied")

// Store is a ledger.Backend persisting one store mapping in a single JSON
// file. The file is rewritten completely on every Save; there is no partial
// update and no locking beyond the serialization the ledger stores provide.
type Store struct {
	path   string
	logger ledger.Logger
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store. The corrupt-file diagnostic is
// printed to standard output regardless, for compatibility with callers
// that watch the stream instead of a log.
func WithLogger(logger ledger.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStore creates a new file-backed Store for the given path with optional
// configuration. The file and its parent directory are created lazily on
// the first Save.
func NewStore(path string, options ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPathSupplied
	}

	s := &Store{path: path}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Load reads the complete mapping from the store file.
//
// A missing file yields an empty mapping. Content that fails to parse
// yields an empty mapping with recovered=true and a diagnostic on standard
// output. Only unrecoverable I/O errors (e.g. permission failures) are
// returned as errors.
func (s *Store) Load(_ context.Context) (ledger.Documents, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.Documents{}, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	docs := ledger.Documents{}

	if err := codec.Unmarshal(data, &docs); err != nil {
		fmt.Printf("Warning: store file %s is corrupt (%v). Using empty store.\n", s.path, err)

		if s.logger != nil {
			s.logger.Warn(logMsgCorrupt, logAttrPath, s.path, logAttrError, err.Error())
		}

		return ledger.Documents{}, true, nil
	}

	return docs, false, nil
}

// Save writes the complete mapping to the store file, creating the parent
// directory if needed. Records are indented for readability; key order in
// the file is not semantically meaningful.
func (s *Store) Save(_ context.Context, docs ledger.Documents) error {
	if docs == nil {
		docs = ledger.Documents{}
	}

	data, err := codec.MarshalIndent(docs, "", indent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, fileMode)
}
