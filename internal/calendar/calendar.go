package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceNotFound is returned when the calendar source is missing or unreadable
	ErrSourceNotFound = errors.New("calendar source not found")

	// ErrInvalidRecord is returned when a calendar record is malformed
	ErrInvalidRecord = errors.New("invalid calendar record")
)

// Entry represents one calendar day loaded from a source
type Entry struct {
	Date      time.Time // midnight UTC of the calendar date
	IsHoliday bool
	Note      string // third column, not used for scheduling
}

// RecordError describes a malformed record in a calendar source
type RecordError struct {
	Line   int
	Reason string
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// Unwrap lets errors.Is match ErrInvalidRecord
func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

func recordError(line int, format string, args ...interface{}) error {
	return &RecordError{
		Line:   line,
		Reason: fmt.Sprintf(format, args...),
	}
}
