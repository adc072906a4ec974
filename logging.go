package kernel

import (
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type used throughout the scheduler. It is
// a thin alias over the generified form of [logiface.Logger], so callers may
// supply any backend logiface supports (stumpy, zerolog, slog, logrus, ...)
// via WithLogger.
type Logger = *logiface.Logger[logiface.Event]

// LogBuilder is the field-builder type passed to LogFields callbacks.
type LogBuilder = *logiface.Builder[logiface.Event]

// LogFields populates extra structured fields on a log builder; see logDebug.
type LogFields = func(b LogBuilder)

// defaultLogger returns a stumpy-backed logger writing to stderr at
// informational level, used whenever WithLogger is not supplied. A nil
// *Logger is also valid everywhere in this package (logiface's Builder
// methods are nil-receiver safe), matching the teacher's NewNoOpLogger
// convention.
func defaultLogger() Logger {
	return stumpy.L.New(
		stumpy.L.WithLevel(stumpy.L.LevelInformational()),
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
	).Logger()
}

// logDebug emits a debug-level structured log entry for scheduler-internal
// bookkeeping: initialization, thread creation, reaping, and stats.
// Dispatcher decisions and wake sweeps are not logged. Safe to call with a
// nil logger.
func logDebug(l Logger, msg string, fields LogFields) {
	if l == nil {
		return
	}
	b := l.Debug()
	if fields != nil {
		fields(b)
	}
	b.Log(msg)
}

// logFatal emits an emergency-level log entry immediately before a contract
// violation panics the process (spec §7: fatal assertions halt the system;
// in Go, "halt" means log-then-panic).
func logFatal(l Logger, msg string, err error) {
	if l == nil {
		return
	}
	l.Emerg().Err(err).Log(msg)
}
