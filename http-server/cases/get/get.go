package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"case-tracker/internal/constants"
	"case-tracker/internal/storage"
)

type CaseProvider interface {
	GetCase(ctx context.Context, kind storage.CaseKind, id int64) (*storage.Case, error)
	ListCases(ctx context.Context, kind storage.CaseKind, filter storage.CaseFilter) ([]storage.Case, error)
}

func GetCase(log *slog.Logger, provider CaseProvider, kind storage.CaseKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.get.GetCase"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := provider.GetCase(ctx, kind, id)
		if err != nil {
			if errors.Is(err, storage.ErrCaseNotFound) {
				http.Error(w, "case not found", http.StatusNotFound)
				return
			}
			log.Error("ошибка получения кейса", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, c)
	}
}

// ListByDate: список кейсов за день (OT-вкладка), по умолчанию сегодня.
// search ищет по field (case_id или doctor), region и type сужают список.
func ListByDate(log *slog.Logger, provider CaseProvider, kind storage.CaseKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.get.ListByDate"

		filter, err := DayFilter(r, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListCases(ctx, kind, filter)
		if err != nil {
			log.Error("ошибка получения списка кейсов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

var errBadField = errors.New("field must be case_id or doctor")

func DayFilter(r *http.Request, now time.Time) (storage.CaseFilter, error) {
	q := r.URL.Query()

	date := q.Get("date")
	if date == "" {
		date = now.Format(constants.DateLayout)
	} else if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return storage.CaseFilter{}, errors.New("invalid date")
	}

	filter := storage.CaseFilter{
		Date:     date,
		Region:   clearAll(q.Get("region"), "All Regions"),
		CaseType: clearAll(q.Get("type"), "All Types"),
	}

	search := strings.TrimSpace(q.Get("search"))
	switch q.Get("field") {
	case "", "case_id":
		filter.CaseID = search
	case "doctor":
		filter.Doctor = search
	default:
		return storage.CaseFilter{}, errBadField
	}

	return filter, nil
}

func clearAll(v, all string) string {
	if v == "All" || v == all {
		return ""
	}
	return v
}

// History: вкладка History: поиск по Case ID, статус и дата "с". По умолчанию месяц назад.
func History(log *slog.Logger, provider CaseProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cases.get.History"

		filter, err := HistoryFilter(r, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListCases(ctx, storage.KindRegular, filter)
		if err != nil {
			log.Error("ошибка загрузки истории", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

var errBadStatus = errors.New("status must be All, OK or LOW")

func HistoryFilter(r *http.Request, now time.Time) (storage.CaseFilter, error) {
	q := r.URL.Query()

	status := q.Get("status")
	if status == "All" {
		status = ""
	}
	if status != "" && !constants.HistoryStatuses[status] {
		return storage.CaseFilter{}, errBadStatus
	}

	from := q.Get("from")
	if from == "" {
		from = now.AddDate(0, -1, 0).Format(constants.DateLayout)
	} else if _, err := time.Parse(constants.DateLayout, from); err != nil {
		return storage.CaseFilter{}, errors.New("invalid from date")
	}

	return storage.CaseFilter{
		CaseID: q.Get("search"),
		Status: status,
		From:   from,
	}, nil
}
