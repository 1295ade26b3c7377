package ports

import "io"

// Logger is the structured logging abstraction for the application.
type Logger interface {
	// Debug logs a message that is only visible in verbose mode.
	Debug(msg string)

	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error, rendering wrapped causes where available.
	Error(err error)

	// SetOutput redirects log output. A nil writer restores the default.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)

	// SetVerbose toggles whether debug messages are emitted.
	SetVerbose(enable bool)
}
