package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerate_WeekendsOnly(t *testing.T) {
	var buf bytes.Buffer

	rows, err := Generate(&buf, d(2020, time.April, 1), d(2020, time.April, 7), GenerateOptions{Holidays: "none"})
	require.NoError(t, err)
	assert.Equal(t, 7, rows)

	want := strings.Join([]string{
		"date,is_holiday,note",
		"2020/04/01,0,",
		"2020/04/02,0,",
		"2020/04/03,0,",
		"2020/04/04,1,weekend",
		"2020/04/05,1,weekend",
		"2020/04/06,0,",
		"2020/04/07,0,",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestGenerate_USHolidays(t *testing.T) {
	var buf bytes.Buffer

	// 2020-07-04 is a Saturday, observed on Friday 2020-07-03
	_, err := Generate(&buf, d(2020, time.July, 1), d(2020, time.July, 7), GenerateOptions{
		DateFormat: "2006-01-02",
		Holidays:   "us",
	})
	require.NoError(t, err)

	loader := NewLoader(NewFileSource("unused"), LoaderOptions{DateFormat: "2006-01-02", Header: true}, zap.NewNop())
	entries, err := loader.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	flags := make(map[int]bool)
	for _, entry := range entries {
		flags[entry.Date.Day()] = entry.IsHoliday
	}
	assert.Equal(t, map[int]bool{1: false, 2: false, 3: true, 4: true, 5: true, 6: false, 7: false}, flags)

	july3 := entries[2]
	assert.NotEmpty(t, july3.Note)
	assert.NotEqual(t, "weekend", july3.Note)
}

func TestGenerate_Errors(t *testing.T) {
	var buf bytes.Buffer

	_, err := Generate(&buf, d(2020, time.April, 7), d(2020, time.April, 1), GenerateOptions{Holidays: "none"})
	assert.Error(t, err)

	_, err = Generate(&buf, d(2020, time.April, 1), d(2020, time.April, 7), GenerateOptions{Holidays: "mars"})
	assert.ErrorContains(t, err, "unknown holiday set")
}

func TestHolidaySets(t *testing.T) {
	assert.Equal(t, []string{"none", "us"}, HolidaySets())
}
