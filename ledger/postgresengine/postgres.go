package postgresengine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/hotelops/reservation-ledger-go/ledger"
	"github.com/hotelops/reservation-ledger-go/ledger/postgresengine/internal/adapters"
)

const (
	defaultTableName       = "records"
	colRecordKey           = "record_key"
	colDocument            = "document"
	dialectPostgres        = "postgres"
	castJsonb              = "?::jsonb"
	logMsgBuildQueryFailed = "failed to build document query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgDBExecFailed     = "database execution failed during save"
	logMsgLoadCompleted    = "documents loaded"
	logMsgSaveCompleted    = "documents saved"
	logMsgSQLExecuted      = "executed sql for: "
	logActionLoad          = "load"
	logActionDeleteAll     = "delete all"
	logActionInsertAll     = "insert all"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrTable           = "table"
	logAttrDocumentCount   = "document_count"
	logAttrDurationMS      = "duration_ms"
)

var ErrBuildingQueryFailed = errors.New("building sql query failed")

// DocumentStore is a ledger.Backend persisting one store mapping as rows of
// a single key/document table. It leverages a database adapter and supports
// customizable logging and table configuration.
type DocumentStore struct {
	db        adapters.DBAdapter
	tableName string
	logger    ledger.Logger
}

// Option defines a functional option for configuring a DocumentStore.
type Option func(*DocumentStore) error

// WithTableName sets the table name for the DocumentStore. Each entity
// store needs its own table.
func WithTableName(tableName string) Option {
	return func(ds *DocumentStore) error {
		if tableName == "" {
			return ledger.ErrEmptyTableNameSupplied
		}

		ds.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the DocumentStore.
func WithLogger(logger ledger.Logger) Option {
	return func(ds *DocumentStore) error {
		ds.logger = logger
		return nil
	}
}

// NewDocumentStoreFromPGXPool creates a new DocumentStore using a pgx Pool
// with optional configuration.
func NewDocumentStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*DocumentStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newDocumentStore(adapters.NewPGXAdapter(db), options)
}

// NewDocumentStoreFromSQLDB creates a new DocumentStore using a sql.DB
// with optional configuration.
func NewDocumentStoreFromSQLDB(db *sql.DB, options ...Option) (*DocumentStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newDocumentStore(adapters.NewSQLAdapter(db), options)
}

// NewDocumentStoreFromSQLX creates a new DocumentStore using a sqlx.DB
// with optional configuration.
func NewDocumentStoreFromSQLX(db *sqlx.DB, options ...Option) (*DocumentStore, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newDocumentStore(adapters.NewSQLXAdapter(db), options)
}

func newDocumentStore(db adapters.DBAdapter, options []Option) (*DocumentStore, error) {
	ds := &DocumentStore{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(ds); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// Load fetches the complete mapping from the document table. The recovered
// flag is always false: unlike a flat file, a table either answers or the
// connection fails, and connection failures are unrecoverable I/O errors.
func (ds *DocumentStore) Load(ctx context.Context) (ledger.Documents, bool, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(ds.tableName).
		Select(colRecordKey, colDocument).
		Order(goqu.I(colRecordKey).Asc()).
		ToSQL()
	if toSQLErr != nil {
		ds.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return nil, false, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := ds.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	ds.logQueryWithDuration(sqlQuery, logActionLoad, duration)

	if queryErr != nil {
		ds.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, false, queryErr
	}
	defer ds.closeRows(rows)

	docs := ledger.Documents{}

	var key string
	var doc []byte

	for rows.Next() {
		if scanErr := rows.Scan(&key, &doc); scanErr != nil {
			ds.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, false, scanErr
		}

		duplicate := make([]byte, len(doc))
		copy(duplicate, doc)
		docs[key] = json.RawMessage(duplicate)
	}

	ds.logOperation(logMsgLoadCompleted, logAttrTable, ds.tableName, logAttrDocumentCount, len(docs))

	return docs, false, nil
}

// Save replaces the complete content of the document table with the given
// mapping: all rows are deleted, then the new rows are inserted.
func (ds *DocumentStore) Save(ctx context.Context, docs ledger.Documents) error {
	builder := goqu.Dialect(dialectPostgres)

	deleteSQL, _, toSQLErr := builder.Delete(ds.tableName).ToSQL()
	if toSQLErr != nil {
		ds.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if err := ds.exec(ctx, deleteSQL, logActionDeleteAll); err != nil {
		return err
	}

	if len(docs) == 0 {
		ds.logOperation(logMsgSaveCompleted, logAttrTable, ds.tableName, logAttrDocumentCount, 0)
		return nil
	}

	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	insertStmt := builder.
		Insert(ds.tableName).
		Cols(colRecordKey, colDocument)

	for _, key := range keys {
		insertStmt = insertStmt.Vals(goqu.Vals{key, goqu.L(castJsonb, string(docs[key]))})
	}

	insertSQL, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		ds.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if err := ds.exec(ctx, insertSQL, logActionInsertAll); err != nil {
		return err
	}

	ds.logOperation(logMsgSaveCompleted, logAttrTable, ds.tableName, logAttrDocumentCount, len(docs))

	return nil
}

func (ds *DocumentStore) exec(ctx context.Context, sqlQuery string, action string) error {
	start := time.Now()
	_, execErr := ds.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	ds.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		ds.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return execErr
	}

	return nil
}

func (ds *DocumentStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if ds.logger != nil {
			ds.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL with execution time at debug level if the
// logger is configured.
func (ds *DocumentStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if ds.logger != nil {
		ds.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (ds *DocumentStore) logOperation(msg string, args ...any) {
	if ds.logger != nil {
		ds.logger.Info(msg, args...)
	}
}

func (ds *DocumentStore) logError(msg string, args ...any) {
	if ds.logger != nil {
		ds.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds
// with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
