package downtime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"case-tracker/http-server/cases/save"
	"case-tracker/internal/constants"
	"case-tracker/internal/service/cases"
	"case-tracker/internal/storage"
)

type DowntimeManager interface {
	AddDowntime(ctx context.Context, in cases.DowntimeInput) (storage.Downtime, error)
	DeleteDowntime(ctx context.Context, id int64) error
}

type DowntimeProvider interface {
	ListDowntimes(ctx context.Context, date string) ([]storage.Downtime, error)
}

func Save(log *slog.Logger, manager DowntimeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.downtime.Save"

		var in cases.DowntimeInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		d, err := manager.AddDowntime(ctx, in)
		if err != nil {
			if msg, ok := save.BadRequest(err); ok {
				http.Error(w, msg, http.StatusBadRequest)
				return
			}
			log.Error("ошибка сохранения простоя", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "failed to save downtime", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, d)
	}
}

func List(log *slog.Logger, provider DowntimeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.downtime.List"

		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format(constants.DateLayout)
		} else if _, err := time.Parse(constants.DateLayout, date); err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListDowntimes(ctx, date)
		if err != nil {
			log.Error("ошибка получения простоев", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

func Delete(log *slog.Logger, manager DowntimeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.downtime.Delete"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := manager.DeleteDowntime(ctx, id); err != nil {
			if errors.Is(err, storage.ErrDowntimeNotFound) {
				http.Error(w, "downtime not found", http.StatusNotFound)
				return
			}
			log.Error("ошибка удаления простоя", slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Reasons: список для выпадающего меню.
func Reasons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, constants.DowntimeReasonOrder)
	}
}
