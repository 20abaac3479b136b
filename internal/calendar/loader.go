package calendar

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/username/workhome-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	recordFields = 3
	flagWorkday  = "0"
	flagHoliday  = "1"
)

// LoaderOptions controls how a calendar source is parsed
type LoaderOptions struct {
	DateFormat string // Go time layout of the date column
	Header     bool   // first record is a header
	Encoding   string // WHATWG label of the source text encoding
}

// Loader reads calendar entries from a Source into a Store
type Loader struct {
	source Source
	opts   LoaderOptions
	logger *zap.Logger
}

// NewLoader creates a new Loader instance
func NewLoader(source Source, opts LoaderOptions, logger *zap.Logger) *Loader {
	if opts.DateFormat == "" {
		opts.DateFormat = dateutil.DefaultLayout
	}
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}

	return &Loader{
		source: source,
		opts:   opts,
		logger: logger,
	}
}

// Source returns the source the loader reads from
func (l *Loader) Source() Source {
	return l.source
}

// Load reads the source into a new Store
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	store := NewStore()
	if err := l.LoadInto(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadInto reads the source and replaces the content of store.
// The store is only modified when the whole source parses cleanly.
func (l *Loader) LoadInto(ctx context.Context, store *Store) error {
	rc, err := l.source.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	entries, err := l.Parse(rc)
	if err != nil {
		return fmt.Errorf("failed to load calendar %s: %w", l.source, err)
	}

	if err := store.Replace(entries); err != nil {
		return fmt.Errorf("failed to load calendar %s: %w", l.source, err)
	}

	sum := store.Summary()
	l.logger.Info("Calendar loaded",
		zap.String("source", l.source.String()),
		zap.Int("entries", sum.Entries),
		zap.Int("holidays", sum.Holidays),
		zap.Time("first", sum.First),
		zap.Time("last", sum.Last))

	return nil
}

// Parse reads calendar records from r.
// Format: date,is_holiday,note
// Example: 2020/04/04,1,Children's Day
func (l *Loader) Parse(r io.Reader) ([]Entry, error) {
	decoded, err := decodeReader(r, l.opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // field count is checked per record below
	reader.LazyQuotes = true    // notes and headers may carry stray quotes

	var entries []Entry
	seen := make(map[dayKey]int)
	headerPending := l.opts.Header

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, recordError(parseErr.StartLine, "%v", parseErr.Err)
			}
			return nil, fmt.Errorf("error reading calendar: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if headerPending {
			headerPending = false
			continue
		}

		if isBlank(record) {
			continue
		}

		if len(record) != recordFields {
			return nil, recordError(line, "record length should be %d, got %d", recordFields, len(record))
		}

		dateStr := strings.TrimSpace(record[0])
		flag := record[1] // must be exactly 0 or 1, padding included
		note := strings.TrimSpace(record[2])

		if flag != flagWorkday && flag != flagHoliday {
			return nil, recordError(line, "holiday value should be 0 or 1, got %q", flag)
		}

		date, err := dateutil.ParseDate(l.opts.DateFormat, dateStr)
		if err != nil {
			return nil, recordError(line, "%v", err)
		}

		key := keyOf(date)
		if prev, dup := seen[key]; dup {
			return nil, recordError(line, "duplicate date %s (first seen on line %d)", dateStr, prev)
		}
		seen[key] = line

		entries = append(entries, Entry{
			Date:      date,
			IsHoliday: flag == flagHoliday,
			Note:      note,
		})
	}

	return entries, nil
}

// isBlank reports whether a record came from a whitespace-only line
func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
