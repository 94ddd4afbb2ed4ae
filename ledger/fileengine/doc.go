// Package fileengine implements the canonical flat-file backend for the
// reservation ledger: one human-readable JSON file per store, holding the
// whole key-to-record mapping with 2-space indentation.
//
// An absent file is equivalent to an empty store. A file whose content
// fails to parse is treated as an empty store: a diagnostic is emitted to
// standard output, the recovered flag of Load is set, and no error is
// returned. Callers must tolerate this recovery-to-empty behavior on
// corrupt input.
package fileengine
