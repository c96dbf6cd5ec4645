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

type ConflictFinder interface {
	FindConflicts(ctx context.Context, id string) (*api.ConflictsResponse, error)
}

type Response struct {
	response.Response
	*api.ConflictsResponse
}

func New(log *slog.Logger, finder ConflictFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.conflicts.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("Missing course id")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "course id is required"))
			return
		}

		conflicts, err := finder.FindConflicts(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Course not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "course not found"))
			return
		}

		if err != nil {
			log.Error("Failed to find conflicts", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to find conflicts"))
			return
		}

		log.Info("Conflicts computed",
			slog.String("id", id),
			slog.Int("count", len(conflicts.Conflicts)),
		)
		render.JSON(w, r, Response{ConflictsResponse: conflicts})
	}
}
