package get

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ualz-service/pkg/response"
	"ualz-service/pkg/sl"
)

const (
	formatXLSX = "xlsx"
	formatCSV  = "csv"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type ConflictExporter interface {
	ExportConflictsXLSX(ctx context.Context, id string) (*bytes.Buffer, string, error)
	ExportConflictsCSV(ctx context.Context, id string) (*bytes.Buffer, string, error)
}

func New(log *slog.Logger, exporter ConflictExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.export.get.New"

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

		format := r.URL.Query().Get("format")
		if format == "" {
			format = formatXLSX
		}

		var (
			buf         *bytes.Buffer
			filename    string
			contentType string
			err         error
		)

		switch format {
		case formatXLSX:
			buf, filename, err = exporter.ExportConflictsXLSX(r.Context(), id)
			contentType = contentTypeXLSX
		case formatCSV:
			buf, filename, err = exporter.ExportConflictsCSV(r.Context(), id)
			contentType = contentTypeCSV
		default:
			log.Error("Unsupported export format", slog.String("format", format))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "format must be xlsx or csv"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("Course not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "course not found"))
			return
		}

		if err != nil {
			log.Error("Failed to export conflicts", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to export conflicts"))
			return
		}

		log.Info("Conflicts exported",
			slog.String("id", id),
			slog.String("format", format),
			slog.Int("bytes", buf.Len()),
		)

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error("Failed to write export", sl.Err(err))
		}
	}
}
