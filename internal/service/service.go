package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ualz-service/api"
	"ualz-service/internal/models"
	"ualz-service/internal/overlap"
	"ualz-service/pkg/response"
)

const (
	clockFormat = "15:04"
	dateFormat  = "02/01/2006"
)

// CatalogProvider yields the current normalized catalog. The returned
// slice is read-only by contract; the service never mutates it.
type CatalogProvider interface {
	Catalog(ctx context.Context) ([]models.CourseRecord, error)
	Reload(ctx context.Context) ([]models.CourseRecord, error)
}

type Service struct {
	provider CatalogProvider
}

func NewService(provider CatalogProvider) *Service {
	return &Service{provider: provider}
}

// ListCourses returns the selection menu: one entry per course,
// sorted alphabetically by title, labeled unambiguously.
func (s *Service) ListCourses(ctx context.Context) ([]api.CourseMenuEntry, error) {
	const op = "service.ListCourses"

	catalog, err := s.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]api.CourseMenuEntry, 0, len(catalog))
	for _, rec := range catalog {
		entries = append(entries, api.CourseMenuEntry{
			ID:    rec.ID,
			Label: rec.DisplayTitle,
			Title: rec.Title,
			Day:   rec.Day,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Title != entries[j].Title {
			return entries[i].Title < entries[j].Title
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// GetCourse returns the detail view of one course.
func (s *Service) GetCourse(ctx context.Context, id string) (*api.CourseResponse, error) {
	const op = "service.GetCourse"

	catalog, err := s.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := findByID(catalog, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := toResponse(rec)
	return &resp, nil
}

// FindConflicts returns the reference course together with every
// course that conflicts with it, ordered by start time.
func (s *Service) FindConflicts(ctx context.Context, id string) (*api.ConflictsResponse, error) {
	const op = "service.FindConflicts"

	catalog, err := s.provider.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ref, err := findByID(catalog, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conflicts, err := overlap.FindConflicts(catalog, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.ConflictsResponse{
		Reference: toResponse(ref),
		Conflicts: make([]api.CourseResponse, 0, len(conflicts)),
	}
	for i := range conflicts {
		resp.Conflicts = append(resp.Conflicts, toResponse(&conflicts[i]))
	}

	return resp, nil
}

// Reload forces a cache-bypassing reload of the catalog and returns
// the number of courses loaded.
func (s *Service) Reload(ctx context.Context) (int, error) {
	const op = "service.Reload"

	catalog, err := s.provider.Reload(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(catalog), nil
}

func findByID(catalog []models.CourseRecord, id string) (*models.CourseRecord, error) {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, fmt.Errorf("id %q: %w", id, response.ErrNotFound)
}

func toResponse(rec *models.CourseRecord) api.CourseResponse {
	return api.CourseResponse{
		ID:        rec.ID,
		Title:     rec.Title,
		Day:       rec.Day,
		StartTime: formatClock(rec.StartTime),
		EndTime:   formatClock(rec.EndTime),
		StartDate: formatDate(rec.StartDate),
		EndDate:   formatDate(rec.EndDate),
		Teacher:   rec.Teacher,
		Room:      rec.Room,
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(clockFormat)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
