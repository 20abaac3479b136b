package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidStatus is returned for a starting status other than home or office
	ErrInvalidStatus = errors.New("working status should be home or office")

	// ErrInvalidArgument is returned for a non-positive working day count
	ErrInvalidArgument = errors.New("the working day range should be greater than 0")

	// ErrCalendarExhausted is returned when the walk leaves the loaded calendar
	ErrCalendarExhausted = errors.New("date cannot be found on loaded calendar data")
)

// Status is where a person works on a given day
type Status string

const (
	StatusHome   Status = "home"
	StatusOffice Status = "office"
)

// ParseStatus converts "home" or "office" to a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w, got %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Valid reports whether s is home or office
func (s Status) Valid() bool {
	return s == StatusHome || s == StatusOffice
}

// Toggle returns the other status
func (s Status) Toggle() Status {
	if s == StatusHome {
		return StatusOffice
	}
	return StatusHome
}

func (s Status) String() string {
	return string(s)
}

// Direction is the way the walk moves through the calendar
type Direction int

const (
	Forward Direction = iota + 1
	Backward
)

// ParseDirection accepts next/forward and previous/backward
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "forward":
		return Forward, nil
	case "previous", "prev", "backward":
		return Backward, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
}

// step is the day offset applied to the cursor
func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "next"
	case Backward:
		return "previous"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
