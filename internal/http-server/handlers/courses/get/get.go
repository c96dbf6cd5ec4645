package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ualz-service/api"
	"ualz-service/pkg/response"
	"ualz-service/pkg/sl"
)

type CourseGetter interface {
	ListCourses(ctx context.Context) ([]api.CourseMenuEntry, error)
	GetCourse(ctx context.Context, id string) (*api.CourseResponse, error)
}

type Response struct {
	response.Response
	Courses []api.CourseMenuEntry `json:"courses,omitempty"`
	Course  *api.CourseResponse   `json:"course,omitempty"`
}

func New(log *slog.Logger, getter CourseGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.courses.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			// Get by ID
			course, err := getter.GetCourse(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("Course not found", slog.String("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "course not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get course", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get course"))
				return
			}

			log.Info("Course retrieved", slog.String("id", id))
			render.JSON(w, r, Response{Course: course})
			return
		}

		// List
		courses, err := getter.ListCourses(r.Context())

		if err != nil {
			log.Error("Failed to list courses", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list courses"))
			return
		}

		log.Info("Courses listed", slog.Int("count", len(courses)))
		render.JSON(w, r, Response{Courses: courses})
	}
}
