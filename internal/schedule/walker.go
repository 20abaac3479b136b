// Package schedule computes alternating home/office working days over a
// holiday calendar.
//
// Starting from a date and a status, every working day the walk reaches flips
// the status; holidays are skipped. The start date itself is never part of
// the result.
package schedule

import (
	"fmt"
	"time"

	"github.com/username/workhome-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

// maxPrealloc bounds the result capacity reserved up front. The requested
// count is unchecked against the calendar until the walk runs out.
const maxPrealloc = 64

// Calendar classifies a date. ok is false when the date is not covered.
type Calendar interface {
	Lookup(date time.Time) (holiday bool, ok bool)
}

// Request describes one walk
type Request struct {
	Start       time.Time // exclusive
	Status      Status    // status of the start date
	Direction   Direction
	WorkingDays int
}

// Day is one working day of the rotation
type Day struct {
	Date   time.Time
	Status Status
}

// Walker walks a Calendar day by day
type Walker struct {
	calendar Calendar
	logger   *zap.Logger
}

// NewWalker creates a new Walker
func NewWalker(cal Calendar, logger *zap.Logger) *Walker {
	return &Walker{
		calendar: cal,
		logger:   logger,
	}
}

// Walk returns exactly req.WorkingDays working days in req.Direction.
// Nothing is returned if the calendar runs out first.
func (w *Walker) Walk(req Request) ([]Day, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidStatus, string(req.Status))
	}
	if req.WorkingDays < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidArgument, req.WorkingDays)
	}
	if req.Direction != Forward && req.Direction != Backward {
		return nil, fmt.Errorf("%w: unknown direction %d", ErrInvalidArgument, int(req.Direction))
	}

	step := req.Direction.step()
	cursor := dateutil.Normalize(req.Start)
	status := req.Status
	days := make([]Day, 0, min(req.WorkingDays, maxPrealloc))
	skipped := 0

	for len(days) < req.WorkingDays {
		cursor = dateutil.AddDays(cursor, step)

		holiday, ok := w.calendar.Lookup(cursor)
		if !ok {
			w.logger.Debug("Walked off the loaded calendar",
				zap.Time("date", cursor),
				zap.Int("found", len(days)),
				zap.Int("wanted", req.WorkingDays))
			return nil, fmt.Errorf("%w: %s", ErrCalendarExhausted, cursor.Format("2006-01-02"))
		}

		if holiday {
			skipped++
			continue
		}

		status = status.Toggle()
		days = append(days, Day{Date: cursor, Status: status})
	}

	w.logger.Debug("Schedule walked",
		zap.Time("start", dateutil.Normalize(req.Start)),
		zap.String("start_status", req.Status.String()),
		zap.String("direction", req.Direction.String()),
		zap.Int("working_days", len(days)),
		zap.Int("holidays_skipped", skipped))

	return days, nil
}

// Next returns the next n working days after start
func (w *Walker) Next(start time.Time, status Status, n int) ([]Day, error) {
	return w.Walk(Request{Start: start, Status: status, Direction: Forward, WorkingDays: n})
}

// Previous returns the previous n working days before start, nearest first
func (w *Walker) Previous(start time.Time, status Status, n int) ([]Day, error) {
	return w.Walk(Request{Start: start, Status: status, Direction: Backward, WorkingDays: n})
}

// NextDay returns the first working day after start
func (w *Walker) NextDay(start time.Time, status Status) (Day, error) {
	return w.single(start, status, Forward)
}

// PreviousDay returns the last working day before start
func (w *Walker) PreviousDay(start time.Time, status Status) (Day, error) {
	return w.single(start, status, Backward)
}

func (w *Walker) single(start time.Time, status Status, dir Direction) (Day, error) {
	days, err := w.Walk(Request{Start: start, Status: status, Direction: dir, WorkingDays: 1})
	if err != nil {
		return Day{}, err
	}
	return days[0], nil
}
