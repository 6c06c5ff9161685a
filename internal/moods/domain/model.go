package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Date identifies one calendar day, independent of any time zone.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// NewDate validates the parts and returns the matching Date.
func NewDate(year, month, day int) (Date, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return Date{}, ErrInvalidDate
	}
	if day > DaysIn(year, time.Month(month)) {
		return Date{}, ErrInvalidDate
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DaysIn returns the number of days of the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return o.Before(d) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Keys returns the zero-padded path segments used by the document store.
func (d Date) Keys() (year, month, day string) {
	return strconv.Itoa(d.Year), fmt.Sprintf("%02d", int(d.Month)), fmt.Sprintf("%02d", d.Day)
}

// MonthKey formats a month path segment.
func MonthKey(m time.Month) string { return fmt.Sprintf("%02d", int(m)) }

// Record is one stored mood.
type Record struct {
	UserID    string    `json:"user_id"`
	Date      Date      `json:"date"`
	Emotion   Emotion   `json:"emotion"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// MonthMoods maps day-of-month to the stored label. Labels are kept raw so
// that readers can ignore values outside the palette.
type MonthMoods map[int]string

// YearMoods maps month to that month's moods.
type YearMoods map[time.Month]MonthMoods

// Get returns the palette emotion stored for a day, if any.
func (y YearMoods) Get(m time.Month, day int) (Emotion, bool) {
	e := Emotion(y[m][day])
	return e, e.Valid()
}
