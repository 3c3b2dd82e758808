package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"case-tracker/internal/constants"
	"case-tracker/internal/service/production"
	"case-tracker/internal/storage"
)

type ProductionProvider interface {
	Daily(ctx context.Context, date string) (production.DailyProduction, error)
	Overtime(ctx context.Context, date string) (production.OvertimeProduction, error)
	Range(ctx context.Context, filter storage.CaseFilter) (production.ProductionReport, error)
}

type FilterProvider interface {
	DistinctRegions(ctx context.Context, kind storage.CaseKind) ([]string, error)
	DistinctCaseTypes(ctx context.Context, kind storage.CaseKind) ([]string, error)
}

func Daily(log *slog.Logger, provider ProductionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.Daily"

		date, ok := dateParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		daily, err := provider.Daily(ctx, date)
		if err != nil {
			log.Error("ошибка расчёта дневной выработки", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, daily)
	}
}

func Overtime(log *slog.Logger, provider ProductionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.Overtime"

		date, ok := dateParam(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ot, err := provider.Overtime(ctx, date)
		if err != nil {
			log.Error("ошибка расчёта выработки OT", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(ot.Skipped) > 0 {
			log.Warn("нет таблицы единиц для регионов", slog.Any("regions", ot.Skipped))
		}

		render.JSON(w, r, ot)
	}
}

// Range: вкладка Production. Пустые from/to значат сегодня, "All" снимает фильтр.
func Range(log *slog.Logger, provider ProductionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.Range"

		q := r.URL.Query()
		today := time.Now().Format(constants.DateLayout)

		filter := storage.CaseFilter{
			From:     orDefault(q.Get("from"), today),
			To:       orDefault(q.Get("to"), today),
			Region:   allToEmpty(q.Get("region")),
			CaseType: allToEmpty(q.Get("type")),
			Doctor:   q.Get("doctor"),
		}

		for _, d := range []string{filter.From, filter.To} {
			if _, err := time.Parse(constants.DateLayout, d); err != nil {
				http.Error(w, "invalid date", http.StatusBadRequest)
				return
			}
		}
		if filter.From > filter.To {
			http.Error(w, "from must not be after to", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := provider.Range(ctx, filter)
		if err != nil {
			log.Error("ошибка загрузки отчёта по выработке", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, report)
	}
}

// Filters отдаёт значения для выпадающих списков Region / Type.
func Filters(log *slog.Logger, provider FilterProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.Filters"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		regions, err := provider.DistinctRegions(ctx, storage.KindRegular)
		if err != nil {
			log.Error("ошибка получения регионов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		types, err := provider.DistinctCaseTypes(ctx, storage.KindRegular)
		if err != nil {
			log.Error("ошибка получения типов кейсов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string][]string{
			"regions":    regions,
			"case_types": types,
		})
	}
}

func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return time.Now().Format(constants.DateLayout), true
	}
	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func allToEmpty(v string) string {
	if v == "All" {
		return ""
	}
	return v
}
