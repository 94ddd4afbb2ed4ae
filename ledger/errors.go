package ledger

import (
	"errors"
)

// Domain error kinds. Every failure returned by a store operation wraps
// exactly one of these, so callers can classify with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
var ErrAlreadyExists = errors.New("already exists")
var ErrNotFound = errors.New("not found")
var ErrCapacityExceeded = errors.New("no available rooms")
var ErrInvalidState = errors.New("no reservations to cancel")

// Infrastructure failures, joined with the underlying cause.
var ErrLoadingStoreFailed = errors.New("loading store failed")
var ErrSavingStoreFailed = errors.New("saving store failed")
var ErrEncodingRecordFailed = errors.New("encoding record failed")
var ErrDecodingRecordFailed = errors.New("decoding record failed")

// Construction-time failures.
var ErrNilBackendSupplied = errors.New("nil backend supplied")
var ErrNilStoreSupplied = errors.New("nil store supplied")
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
