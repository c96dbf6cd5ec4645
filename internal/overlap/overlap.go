// Package overlap decides which courses in a catalog conflict with a
// selected reference course: same day of week, overlapping clock-time
// intervals and overlapping date ranges.
package overlap

import (
	"fmt"
	"sort"

	"ualz-service/internal/models"
	"ualz-service/pkg/response"
)

// TimeOverlap reports whether the clock-time intervals of a and b
// overlap. A record with an absent start or end time never overlaps
// anything: a course with unknown hours must not be reported as a
// time conflict. The comparison is strict, so intervals that merely
// touch at an endpoint (one ends 12:00, the other starts 12:00) do
// not overlap.
func TimeOverlap(a, b *models.CourseRecord) bool {
	if !a.HasTimes() || !b.HasTimes() {
		return false
	}

	return a.StartTime.Before(*b.EndTime) && b.StartTime.Before(*a.EndTime)
}

// DateOverlap reports whether the active date ranges of a and b
// overlap. A record with an absent start or end date overlaps
// everything: unknown duration is treated as "could overlap". Ranges
// are inclusive on both ends, so ranges that touch at an endpoint DO
// overlap. The asymmetry with TimeOverlap is deliberate, inherited
// behavior.
func DateOverlap(a, b *models.CourseRecord) bool {
	if !a.HasDates() || !b.HasDates() {
		return true
	}

	return !(a.EndDate.Before(*b.StartDate) || b.EndDate.Before(*a.StartDate))
}

// FindConflicts returns the courses conflicting with the course
// identified by referenceID, ordered by start time ascending with
// absent start times last; ties keep catalog order. Returns an error
// wrapping response.ErrNotFound when no record has that id.
func FindConflicts(catalog []models.CourseRecord, referenceID string) ([]models.CourseRecord, error) {
	const op = "overlap.FindConflicts"

	ref := lookup(catalog, referenceID)
	if ref == nil {
		return nil, fmt.Errorf("%s: %w: id %q", op, response.ErrNotFound, referenceID)
	}

	var conflicts []models.CourseRecord
	for _, rec := range catalog {
		if rec.ID == ref.ID {
			continue
		}
		if rec.Day != ref.Day {
			continue
		}
		if TimeOverlap(ref, &rec) && DateOverlap(ref, &rec) {
			conflicts = append(conflicts, rec)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i].StartTime, conflicts[j].StartTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	return conflicts, nil
}

func lookup(catalog []models.CourseRecord, id string) *models.CourseRecord {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
