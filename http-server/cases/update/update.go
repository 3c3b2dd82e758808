package update

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
	"case-tracker/internal/service/cases"
	"case-tracker/internal/storage"
)

type CaseEditor interface {
	Edit(ctx context.Context, kind storage.CaseKind, id int64, in cases.Input) (storage.Case, error)
	Delete(ctx context.Context, kind storage.CaseKind, id int64) error
}

func UpdateCase(log *slog.Logger, editor CaseEditor, kind storage.CaseKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.update.UpdateCase"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		var in cases.Input
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := editor.Edit(ctx, kind, id, in)
		if err != nil {
			if errors.Is(err, storage.ErrCaseNotFound) {
				http.Error(w, "case not found", http.StatusNotFound)
				return
			}
			if msg, ok := save.BadRequest(err); ok {
				http.Error(w, msg, http.StatusBadRequest)
				return
			}
			log.Error("ошибка обновления кейса", slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "failed to update case", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, c)
	}
}

func DeleteCase(log *slog.Logger, editor CaseEditor, kind storage.CaseKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.update.DeleteCase"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := editor.Delete(ctx, kind, id); err != nil {
			if errors.Is(err, storage.ErrCaseNotFound) {
				http.Error(w, "case not found", http.StatusNotFound)
				return
			}
			log.Error("ошибка удаления кейса", slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "failed to delete case", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
