package ledger

// Logger is the logging interface accepted by stores and storage engines.
// All components treat a nil logger as "log nothing".
//
// Debug level: per-operation detail (development use)
// Info level: completed domain operations (production-safe)
// Warn level: recovered or partial conditions, e.g. a corrupt store file
// replaced by an empty store, or a room hold left without a reservation
// record
// Error level: failures that cause the operation to fail.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
