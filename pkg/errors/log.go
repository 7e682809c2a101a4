package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	// Verbose adds stack traces to every event.
	Verbose bool
	// Logger receives the events. The zero value discards them.
	Logger zerolog.Logger
}

// NewLogHandler returns a LogHandler writing JSON events to stderr.
func NewLogHandler(verbose bool) *LogHandler {
	return &LogHandler{
		Verbose: verbose,
		Logger:  zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.Source != "" {
		ev = ev.Str("source", err.Source)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("wave error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("wave panic")
}
