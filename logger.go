package squish

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	warningLabel = color.New(color.FgYellow, color.Bold).Sprint("[WARNING]")
	infoLabel    = color.New(color.FgCyan, color.Bold).Sprint("[INFO]")

	warningSink = func(msg string) {
		fmt.Fprintln(os.Stderr, warningLabel, msg)
	}
	infoSink = func(msg string) {
		fmt.Fprintln(os.Stderr, infoLabel, msg)
	}
)

// SetWarningSink reroutes non-fatal diagnostics. Passing nil restores
// nothing; callers that want silence pass a no-op. Returns the previous
// sink so tests can restore it.
func SetWarningSink(fn func(msg string)) func(msg string) {
	prev := warningSink
	warningSink = fn
	return prev
}

// SetInfoSink reroutes accessible info messages, like directory
// creation notices. Returns the previous sink.
func SetInfoSink(fn func(msg string)) func(msg string) {
	prev := infoSink
	infoSink = fn
	return prev
}

// Warningf emits a non-fatal diagnostic through the warning sink.
func Warningf(format string, args ...any) {
	warningSink(fmt.Sprintf(format, args...))
}

// Infof emits an accessible info message through the info sink.
func Infof(format string, args ...any) {
	infoSink(fmt.Sprintf(format, args...))
}
