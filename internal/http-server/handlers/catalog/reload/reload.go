package reload

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"ualz-service/pkg/response"
	"ualz-service/pkg/sl"
)

type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

type Response struct {
	response.Response
	Courses int `json:"courses"`
}

func New(log *slog.Logger, reloader Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.catalog.reload.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		count, err := reloader.Reload(r.Context())

		if err != nil {
			log.Error("Failed to reload catalog", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.LOAD_FAILED), "failed to reload catalog"))
			return
		}

		log.Info("Catalog reloaded", slog.Int("courses", count))
		render.JSON(w, r, Response{Courses: count})
	}
}
