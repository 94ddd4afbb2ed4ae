package ledger

import (
	"context"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// codec is the JSON configuration used for all record serialization.
var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Documents is the wire representation of a whole store: a mapping from a
// record's unique key to its serialized field set. Key order carries no
// meaning.
type Documents map[string]json.RawMessage

// Backend is the persistence collaborator consumed by every store.
//
// Load returns the complete mapping for one store. A missing underlying
// store is equivalent to an empty one, not an error. When an implementation
// recovers from corrupt input by discarding it, it reports recovered=true
// and returns an empty mapping; only unrecoverable I/O failures are
// returned as errors.
//
// Save replaces the complete persisted mapping. It fails only on
// unrecoverable I/O errors, which are propagated to the caller.
type Backend interface {
	Load(ctx context.Context) (docs Documents, recovered bool, err error)
	Save(ctx context.Context, docs Documents) error
}
