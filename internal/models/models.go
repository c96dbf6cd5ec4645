package models

import "time"

// CourseRecord is one scheduled course offering as loaded from the
// catalog workbook. Time and date fields are nil when the source cell
// was empty or failed to parse; the overlap predicates document how
// absent values behave.
type CourseRecord struct {
	ID           string
	Title        string
	DisplayTitle string
	Day          string
	StartTime    *time.Time
	EndTime      *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	Teacher      string
	Room         string
}

// HasTimes reports whether both clock times are present.
func (c *CourseRecord) HasTimes() bool {
	return c.StartTime != nil && c.EndTime != nil
}

// HasDates reports whether both range dates are present.
func (c *CourseRecord) HasDates() bool {
	return c.StartDate != nil && c.EndDate != nil
}
