package logger

import (
	"io"
	"os"

	"github.com/fatih/color" // Colored console output for the different levels
)

// Colorized printf-style functions for the log levels, built with fatih/color.
// Every message goes to the same writer so the console shows them in order.

var (
	out = io.Writer(os.Stdout)

	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Info logs informational messages in green.
var Info = func(format string, a ...any) { infoColor.Fprintf(out, format, a...) }

// Warn logs warnings in bright magenta.
var Warn = func(format string, a ...any) { warnColor.Fprintf(out, format, a...) }

// Error logs failures in red.
var Error = func(format string, a ...any) { errorColor.Fprintf(out, format, a...) }

// Debug logs debug messages in cyan when enabled, otherwise it is a no-op.
// It is assigned during Init; until then it stays silent.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = func(format string, a ...any) { debugColor.Fprintf(out, format, a...) }
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all levels to w and returns the previous writer.
// Tests use it to capture the console lines.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}
