package main

import (
	"os"

	"github.com/rs/zerolog"
)

// zerologAdapter implements ledger.Logger on top of zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func newLogger(level string) zerologAdapter {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.WarnLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parsed).
		With().
		Timestamp().
		Logger()

	return zerologAdapter{log: log}
}

func (a zerologAdapter) Debug(msg string, args ...any) {
	a.emit(a.log.Debug(), msg, args)
}

func (a zerologAdapter) Info(msg string, args ...any) {
	a.emit(a.log.Info(), msg, args)
}

func (a zerologAdapter) Warn(msg string, args ...any) {
	a.emit(a.log.Warn(), msg, args)
}

func (a zerologAdapter) Error(msg string, args ...any) {
	a.emit(a.log.Error(), msg, args)
}

// emit maps slog-style alternating key/value args onto zerolog fields.
func (a zerologAdapter) emit(event *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		event = event.Interface(key, args[i+1])
	}

	event.Msg(msg)
}
