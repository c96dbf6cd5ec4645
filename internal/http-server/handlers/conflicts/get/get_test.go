package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"ualz-service/api"
	"ualz-service/pkg/response"
)

type stubFinder struct {
	result *api.ConflictsResponse
	err    error
}

func (s *stubFinder) FindConflicts(_ context.Context, id string) (*api.ConflictsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func serve(finder ConflictFinder, target string) *httptest.ResponseRecorder {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Get("/courses/{id}/conflicts", New(log, finder))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestConflictsHandler(t *testing.T) {
	finder := &stubFinder{
		result: &api.ConflictsResponse{
			Reference: api.CourseResponse{ID: "1", Title: "Pittura", Day: "Lunedì"},
			Conflicts: []api.CourseResponse{
				{ID: "2", Title: "Acquerello", Day: "Lunedì", StartTime: "11:00", EndTime: "13:00"},
			},
		},
	}

	w := serve(finder, "/courses/1/conflicts")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Reference.ID != "1" {
		t.Errorf("reference id = %s, want 1", resp.Reference.ID)
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0].ID != "2" {
		t.Errorf("conflicts = %+v", resp.Conflicts)
	}
}

func TestConflictsHandlerNotFound(t *testing.T) {
	finder := &stubFinder{err: fmt.Errorf("service: %w", response.ErrNotFound)}

	w := serve(finder, "/courses/999/conflicts")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != string(response.NOT_FOUND) {
		t.Errorf("error code = %s, want NOT_FOUND", resp.Code)
	}
}

func TestConflictsHandlerInternalError(t *testing.T) {
	finder := &stubFinder{err: fmt.Errorf("boom")}

	w := serve(finder, "/courses/1/conflicts")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
