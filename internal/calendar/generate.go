package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/username/workhome-schedule/pkg/dateutil"
)

// holidaySets maps a holiday set name to its observed holidays
var holidaySets = map[string][]*cal.Holiday{
	"none": nil,
	"us": {
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
}

// HolidaySets returns the names accepted by GenerateOptions.Holidays
func HolidaySets() []string {
	names := make([]string, 0, len(holidaySets))
	for name := range holidaySets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateOptions controls calendar generation
type GenerateOptions struct {
	DateFormat string
	Holidays   string // holiday set name, see HolidaySets
}

// Generate writes a calendar CSV covering [from, to] inclusive.
// Weekends and observed holidays of the chosen set are flagged as holidays.
// Returns the number of data rows written.
func Generate(w io.Writer, from, to time.Time, opts GenerateOptions) (int, error) {
	from = dateutil.Normalize(from)
	to = dateutil.Normalize(to)
	if from.After(to) {
		return 0, fmt.Errorf("from %s is after to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	holidays, ok := holidaySets[opts.Holidays]
	if !ok {
		return 0, fmt.Errorf("unknown holiday set %q (known: %v)", opts.Holidays, HolidaySets())
	}

	layout := opts.DateFormat
	if layout == "" {
		layout = dateutil.DefaultLayout
	}

	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(holidays...)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "is_holiday", "note"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rows := 0
	for day := from; !day.After(to); day = dateutil.AddDays(day, 1) {
		flag := flagWorkday
		note := ""

		if !bc.IsWorkday(day) {
			flag = flagHoliday
			if _, observed, h := bc.IsHoliday(day); observed && h != nil {
				note = h.Name
			} else if dateutil.IsWeekend(day) {
				note = "weekend"
			}
		}

		if err := writer.Write([]string{day.Format(layout), flag, note}); err != nil {
			return rows, fmt.Errorf("failed to write row: %w", err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush calendar: %w", err)
	}

	return rows, nil
}
