package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/workhome-schedule/internal/calendar"
	"github.com/username/workhome-schedule/pkg/dateutil"
)

// d is a test helper to construct dates.
func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// calendar2020 covers 2020-03-01 .. 2020-06-30 with weekends and the
// April 2-5 and May 1 holidays as days off.
func calendar2020(t *testing.T) *calendar.Store {
	t.Helper()

	holidays := map[time.Time]bool{
		d(2020, time.April, 2): true,
		d(2020, time.April, 3): true,
		d(2020, time.May, 1):   true,
	}

	var entries []calendar.Entry
	for day := d(2020, time.March, 1); !day.After(d(2020, time.June, 30)); day = day.AddDate(0, 0, 1) {
		entries = append(entries, calendar.Entry{
			Date:      day,
			IsHoliday: holidays[day] || dateutil.IsWeekend(day),
		})
	}

	store := calendar.NewStore()
	require.NoError(t, store.Replace(entries))
	return store
}

func newWalker(t *testing.T) *Walker {
	return NewWalker(calendar2020(t), zap.NewNop())
}

func TestWalker_NextDay(t *testing.T) {
	tests := []struct {
		name       string
		start      time.Time
		status     Status
		wantDate   time.Time
		wantStatus Status
	}{
		{"Next working day", d(2020, time.April, 6), StatusOffice, d(2020, time.April, 7), StatusHome},
		{"Skips holidays", d(2020, time.April, 1), StatusHome, d(2020, time.April, 6), StatusOffice},
		{"Start status flips", d(2020, time.April, 7), StatusHome, d(2020, time.April, 8), StatusOffice},
		{"From a holiday", d(2020, time.April, 4), StatusHome, d(2020, time.April, 6), StatusOffice},
		{"Across month end", d(2020, time.March, 31), StatusOffice, d(2020, time.April, 1), StatusHome},
	}

	walker := newWalker(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := walker.NextDay(tt.start, tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, day.Date)
			assert.Equal(t, tt.wantStatus, day.Status)
		})
	}
}

func TestWalker_PreviousDay(t *testing.T) {
	tests := []struct {
		name       string
		start      time.Time
		status     Status
		wantDate   time.Time
		wantStatus Status
	}{
		{"Skips holidays backwards", d(2020, time.April, 6), StatusOffice, d(2020, time.April, 1), StatusHome},
		{"Previous working day", d(2020, time.April, 7), StatusHome, d(2020, time.April, 6), StatusOffice},
		{"Over the May 1 long weekend", d(2020, time.May, 4), StatusHome, d(2020, time.April, 30), StatusOffice},
	}

	walker := newWalker(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := walker.PreviousDay(tt.start, tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, day.Date)
			assert.Equal(t, tt.wantStatus, day.Status)
		})
	}
}

func TestWalker_Next(t *testing.T) {
	walker := newWalker(t)

	days, err := walker.Next(d(2020, time.April, 6), StatusOffice, 2)
	require.NoError(t, err)
	assert.Equal(t, []Day{
		{Date: d(2020, time.April, 7), Status: StatusHome},
		{Date: d(2020, time.April, 8), Status: StatusOffice},
	}, days)
}

func TestWalker_Previous(t *testing.T) {
	walker := newWalker(t)

	days, err := walker.Previous(d(2020, time.April, 6), StatusOffice, 2)
	require.NoError(t, err)
	assert.Equal(t, []Day{
		{Date: d(2020, time.April, 1), Status: StatusHome},
		{Date: d(2020, time.March, 31), Status: StatusOffice},
	}, days)
}

func TestWalker_NextLongRange(t *testing.T) {
	walker := newWalker(t)

	days, err := walker.Next(d(2020, time.April, 6), StatusOffice, 23)
	require.NoError(t, err)
	require.Len(t, days, 23)

	assert.Equal(t, Day{Date: d(2020, time.May, 7), Status: StatusOffice}, days[21])
	assert.Equal(t, Day{Date: d(2020, time.May, 8), Status: StatusHome}, days[22])
}

func TestWalker_Alternates(t *testing.T) {
	walker := newWalker(t)

	for _, dir := range []Direction{Forward, Backward} {
		for _, status := range []Status{StatusHome, StatusOffice} {
			days, err := walker.Walk(Request{
				Start:       d(2020, time.May, 1),
				Status:      status,
				Direction:   dir,
				WorkingDays: 30,
			})
			require.NoError(t, err)
			require.Len(t, days, 30)

			assert.Equal(t, status.Toggle(), days[0].Status, "first day flips the start status")
			for i := 1; i < len(days); i++ {
				assert.NotEqual(t, days[i-1].Status, days[i].Status, "day %d", i)
				if dir == Forward {
					assert.True(t, days[i].Date.After(days[i-1].Date))
				} else {
					assert.True(t, days[i].Date.Before(days[i-1].Date))
				}
			}
		}
	}
}

func TestWalker_RoundTrip(t *testing.T) {
	walker := newWalker(t)
	start := d(2020, time.April, 6) // a working day

	forward, err := walker.Next(start, StatusOffice, 10)
	require.NoError(t, err)

	last := forward[len(forward)-1]
	backward, err := walker.Previous(last.Date, last.Status, 10)
	require.NoError(t, err)

	// backward lists forward[8], ..., forward[0], then the start date
	for i := 0; i < 9; i++ {
		assert.Equal(t, forward[8-i], backward[i])
	}
	assert.Equal(t, Day{Date: start, Status: StatusOffice}, backward[9])
}

func TestWalker_DoesNotMutateStart(t *testing.T) {
	walker := newWalker(t)
	start := time.Date(2020, 4, 6, 9, 30, 0, 0, time.UTC)
	startCopy := start

	_, err := walker.Next(start, StatusOffice, 5)
	require.NoError(t, err)
	assert.Equal(t, startCopy, start)
}

func TestWalker_TimeOfDayIgnored(t *testing.T) {
	walker := newWalker(t)
	taipei := time.FixedZone("CST", 8*60*60)

	day, err := walker.NextDay(time.Date(2020, 4, 6, 23, 59, 0, 0, taipei), StatusOffice)
	require.NoError(t, err)
	assert.Equal(t, d(2020, time.April, 7), day.Date)
}

func TestWalker_Errors(t *testing.T) {
	walker := newWalker(t)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "Invalid status",
			req:     Request{Start: d(2020, time.April, 6), Status: "not_home_or_office", Direction: Forward, WorkingDays: 1},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "Status checked before count",
			req:     Request{Start: d(2020, time.April, 6), Status: "", Direction: Forward, WorkingDays: -1},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "Negative working days",
			req:     Request{Start: d(2020, time.April, 6), Status: StatusOffice, Direction: Forward, WorkingDays: -1},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Zero working days",
			req:     Request{Start: d(2020, time.April, 6), Status: StatusOffice, Direction: Backward, WorkingDays: 0},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Unknown direction",
			req:     Request{Start: d(2020, time.April, 6), Status: StatusOffice, WorkingDays: 1},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "Runs off the end",
			req:     Request{Start: d(2020, time.June, 25), Status: StatusOffice, Direction: Forward, WorkingDays: 10},
			wantErr: ErrCalendarExhausted,
		},
		{
			name:    "Runs off the start",
			req:     Request{Start: d(2020, time.March, 3), Status: StatusOffice, Direction: Backward, WorkingDays: 2},
			wantErr: ErrCalendarExhausted,
		},
		{
			name:    "Count larger than any calendar",
			req:     Request{Start: d(2020, time.April, 6), Status: StatusOffice, Direction: Forward, WorkingDays: 1 << 50},
			wantErr: ErrCalendarExhausted,
		},
		{
			name:    "Start outside the calendar",
			req:     Request{Start: d(2021, time.January, 1), Status: StatusHome, Direction: Forward, WorkingDays: 1},
			wantErr: ErrCalendarExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := walker.Walk(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, days)
		})
	}
}

func TestWalker_ExhaustedSingleEntryCalendar(t *testing.T) {
	store := calendar.NewStore()
	require.NoError(t, store.Replace([]calendar.Entry{{Date: d(2020, time.April, 6)}}))
	walker := NewWalker(store, zap.NewNop())

	_, err := walker.NextDay(d(2020, time.April, 6), StatusOffice)
	assert.ErrorIs(t, err, ErrCalendarExhausted)
	assert.ErrorContains(t, err, "2020-04-07")

	_, err = walker.PreviousDay(d(2020, time.April, 6), StatusOffice)
	assert.ErrorIs(t, err, ErrCalendarExhausted)

	_, err = walker.Next(d(2020, time.April, 6), StatusOffice, 2)
	assert.ErrorIs(t, err, ErrCalendarExhausted)

	_, err = walker.Previous(d(2020, time.April, 6), StatusOffice, 2)
	assert.ErrorIs(t, err, ErrCalendarExhausted)
}

func TestWalker_ConcurrentWalks(t *testing.T) {
	walker := newWalker(t)
	want, err := walker.Next(d(2020, time.April, 6), StatusOffice, 20)
	require.NoError(t, err)

	done := make(chan []Day)
	for i := 0; i < 8; i++ {
		go func() {
			days, _ := walker.Next(d(2020, time.April, 6), StatusOffice, 20)
			done <- days
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
