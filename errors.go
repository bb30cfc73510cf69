package squish

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned when no stream codec exists for a
	// format, either because it is an archive format or because no Go
	// implementation is available.
	ErrUnsupportedFormat = errors.New("squish: unsupported compression format")

	// ErrMissingParent is returned when an operation needs the parent
	// directory of a root-level path.
	ErrMissingParent = errors.New("squish: path has no parent directory")

	// ErrMissingRenameTarget is returned when a recursive rename is
	// asked to move between directories that do not both exist.
	ErrMissingRenameTarget = errors.New("squish: source or destination directory does not exist")
)

// InvalidFormatError reports a format specification that could not be
// decoded, keeping the whole original text and the offending reason.
type InvalidFormatError struct {
	Text   string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("squish: invalid format '%s': %s", e.Text, e.Reason)
}

// UsageError is a user-facing failure carrying enough context to
// self-correct: a title, details about what went wrong, and hints on
// how to proceed.
type UsageError struct {
	Title   string
	Details []string
	Hints   []string
}

// Detail appends a detail line and returns the error for chaining.
func (e *UsageError) Detail(d string) *UsageError {
	e.Details = append(e.Details, d)
	return e
}

// Hint appends a hint line and returns the error for chaining.
func (e *UsageError) Hint(h string) *UsageError {
	e.Hints = append(e.Hints, h)
	return e
}

func (e *UsageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Title)
	for _, d := range e.Details {
		b.WriteString("\n - ")
		b.WriteString(d)
	}
	if len(e.Hints) > 0 {
		b.WriteString("\n")
		for _, h := range e.Hints {
			b.WriteString("\nhint: ")
			b.WriteString(h)
		}
	}
	return b.String()
}
