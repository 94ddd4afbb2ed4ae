// Package postgresengine implements a Postgres-backed document backend for
// the reservation ledger, as an alternative to the canonical flat files.
//
// Each store maps to one table with the shape
//
//	CREATE TABLE customers (
//	    record_key TEXT PRIMARY KEY,
//	    document   JSONB NOT NULL
//	);
//
// and the read-modify-write contract of the ledger is preserved verbatim:
// Load fetches every row of the table, Save replaces every row. The replace
// runs as a DELETE followed by an INSERT without a surrounding transaction,
// matching the ledger's documented no-transaction model; the ledger stores
// serialize writers, so the window only matters on a crash.
//
// Three constructors cover the common Postgres client choices: pgxpool,
// database/sql and sqlx.
package postgresengine
