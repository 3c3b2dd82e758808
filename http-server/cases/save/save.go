package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"case-tracker/internal/service/cases"
	"case-tracker/internal/service/production"
	"case-tracker/internal/storage"
)

type CaseRegistrar interface {
	Preview(ctx context.Context, in cases.Input) (cases.Preview, error)
	Register(ctx context.Context, kind storage.CaseKind, in cases.Input) (storage.Case, error)
}

// Calculate: кнопка "Calculate": считает процент, ничего не сохраняет.
func Calculate(log *slog.Logger, reg CaseRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.save.Calculate"

		var in cases.Input
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		preview, err := reg.Preview(ctx, in)
		if err != nil {
			if msg, ok := BadRequest(err); ok {
				http.Error(w, msg, http.StatusBadRequest)
				return
			}
			log.Error("ошибка расчёта кейса", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, preview)
	}
}

func SaveCase(log *slog.Logger, reg CaseRegistrar, kind storage.CaseKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.save.SaveCase"

		var in cases.Input
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := reg.Register(ctx, kind, in)
		if err != nil {
			if msg, ok := BadRequest(err); ok {
				http.Error(w, msg, http.StatusBadRequest)
				return
			}
			log.Error("ошибка сохранения кейса",
				slog.String("op", op),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
			)
			http.Error(w, "failed to save case", http.StatusInternalServerError)
			return
		}

		log.Info("кейс сохранён",
			slog.String("kind", string(kind)),
			slog.String("case_id", c.CaseID),
			slog.Int64("id", c.ID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, c)
	}
}

// BadRequest переводит ошибку валидации в короткое сообщение для формы.
func BadRequest(err error) (string, bool) {
	switch {
	case errors.Is(err, production.ErrInvalidTime), errors.Is(err, production.ErrInvalidClock):
		return "Invalid time", true
	case errors.Is(err, cases.ErrEmptyCaseID):
		return "Enter Case ID", true
	case errors.Is(err, cases.ErrUnknownStandard), errors.Is(err, production.ErrInvalidStandard):
		return "No standard time for this region and case type", true
	case errors.Is(err, cases.ErrInvalidDate):
		return "Invalid date", true
	case errors.Is(err, cases.ErrUnknownKind):
		return "Unknown case kind", true
	case errors.Is(err, cases.ErrInvalidReason):
		return "Invalid downtime reason", true
	}
	return "", false
}
