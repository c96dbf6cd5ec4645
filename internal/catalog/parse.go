package catalog

import (
	"strconv"
	"strings"
	"time"
)

// Excel stores dates as days since the 1900 epoch and clock times as
// fractions of a day; raw cell values can surface either form.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2006-01-02",
}

// ParseClock normalizes a raw cell value to a clock time. Accepts
// HH:MM, HH:MM:SS, dot-as-minute-separator ("10.00") and Excel
// fraction-of-day numbers. Returns nil when the value is empty or
// cannot be read as a time of day.
func ParseClock(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// A bare fraction of a day is an Excel time cell. Values >= 1 fall
	// through to the string layouts, so "10.00" stays ten o'clock.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f < 1 {
		minutes := int(f*24*60 + 0.5)
		t := time.Date(0, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
		return &t
	}

	s = strings.ReplaceAll(s, ".", ":")
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
			return &t
		}
	}

	return nil
}

// ParseDate normalizes a raw cell value to a calendar date using the
// day-first convention of the source data. Accepts Excel serial
// numbers as well. Returns nil when the value is empty or unparseable.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 {
			return nil
		}
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	return nil
}

// SplitTimeRange extracts start and end clock-time tokens from a
// combined range string such as "10.00-12.00" or "dalle 10.00 alle
// 12.00". Alternative separators (a dash, the Italian "dalle"/"alle")
// are normalized to spaces and the dot minute separator to a colon;
// the first two colon-bearing tokens are the start and end. With one
// token only the end stays empty, with none both stay empty.
func SplitTimeRange(raw string) (start, end string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ""
	}

	s = strings.NewReplacer("dalle", " ", "alle", " ", "-", " ").Replace(s)
	s = strings.ReplaceAll(s, ".", ":")

	var times []string
	for _, tok := range strings.Fields(s) {
		if strings.Contains(tok, ":") {
			times = append(times, tok)
		}
	}

	switch {
	case len(times) >= 2:
		return times[0], times[1]
	case len(times) == 1:
		return times[0], ""
	default:
		return "", ""
	}
}
