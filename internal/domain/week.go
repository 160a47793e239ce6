package domain

import (
	"fmt"
	"time"
)

// Week identifies one ISO scheduling week.
type Week struct {
	Number int `json:"week"`
	Year   int `json:"year"`
}

// CurrentWeek returns the ISO week containing t.
func CurrentWeek(t time.Time) Week {
	y, w := t.ISOWeek()
	return Week{Number: w, Year: y}
}

func (w Week) Validate() error {
	if w.Year <= 0 {
		return NewValidationError("year", "must be positive")
	}
	if w.Number < 1 || w.Number > 53 {
		return NewValidationError("week", "must be between 1 and 53")
	}
	// Week 53 exists only in long ISO years; otherwise it is week 1 of the next year.
	if y, n := w.Monday().ISOWeek(); y != w.Year || n != w.Number {
		return NewValidationError("week", fmt.Sprintf("year %d has no ISO week %d", w.Year, w.Number))
	}
	return nil
}

// Monday returns the first day of the ISO week in UTC.
func (w Week) Monday() time.Time {
	// Jan 4th is always in ISO week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday()+6) % 7
	week1 := jan4.AddDate(0, 0, -offset)
	return week1.AddDate(0, 0, (w.Number-1)*7)
}

// Date returns the calendar date of day within the week.
func (w Week) Date(day Weekday) time.Time {
	return w.Monday().AddDate(0, 0, day.Index())
}

func (w Week) String() string {
	return fmt.Sprintf("Week %d, %d", w.Number, w.Year)
}
