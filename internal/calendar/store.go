package calendar

import (
	"sync"
	"time"

	"github.com/username/workhome-schedule/pkg/dateutil"
)

// dayKey is a comparable calendar date used for index lookups
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{year: y, month: m, day: d}
}

// Store holds calendar entries in source order with a date index.
// It is safe for concurrent use; Replace swaps the contents atomically.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[dayKey]bool // date -> is holiday
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		index: make(map[dayKey]bool),
	}
}

// Replace validates entries and replaces the whole store content.
// On error the previous content is left untouched.
func (s *Store) Replace(entries []Entry) error {
	index := make(map[dayKey]bool, len(entries))
	normalized := make([]Entry, len(entries))

	for i, entry := range entries {
		key := keyOf(entry.Date)
		if _, dup := index[key]; dup {
			return recordError(0, "duplicate date %s", entry.Date.Format("2006-01-02"))
		}
		index[key] = entry.IsHoliday

		entry.Date = dateutil.Normalize(entry.Date)
		normalized[i] = entry
	}

	s.mu.Lock()
	s.entries = normalized
	s.index = index
	s.mu.Unlock()

	return nil
}

// Lookup reports whether date is a holiday and whether it is covered at all
func (s *Store) Lookup(date time.Time) (holiday bool, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holiday, ok = s.index[keyOf(date)]
	return holiday, ok
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Entries returns a copy of the entries in source order
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Summary describes what a loaded store covers
type Summary struct {
	Entries  int
	Holidays int
	First    time.Time
	Last     time.Time
}

// Summary returns counts and the earliest and latest covered dates
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for i, entry := range s.entries {
		sum.Entries++
		if entry.IsHoliday {
			sum.Holidays++
		}
		if i == 0 || entry.Date.Before(sum.First) {
			sum.First = entry.Date
		}
		if i == 0 || entry.Date.After(sum.Last) {
			sum.Last = entry.Date
		}
	}

	return sum
}
