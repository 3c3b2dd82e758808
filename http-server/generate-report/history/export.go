package history

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"case-tracker/http-server/cases/get"
	"case-tracker/internal/storage"
)

type HistoryExporter interface {
	HistoryCSV(ctx context.Context, filter storage.CaseFilter, w io.Writer) error
	HistoryExcel(ctx context.Context, filter storage.CaseFilter) ([]byte, error)
}

func ExportCSV(log *slog.Logger, exp HistoryExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate-report.history.ExportCSV"

		filter, err := get.HistoryFilter(r, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		// пишем в буфер, чтобы при ошибке не отдать половину файла
		var buf bytes.Buffer
		if err := exp.HistoryCSV(ctx, filter, &buf); err != nil {
			log.Error("ошибка выгрузки истории в CSV", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName("csv"))
		w.Write(buf.Bytes())
	}
}

func ExportExcel(log *slog.Logger, exp HistoryExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate-report.history.ExportExcel"

		filter, err := get.HistoryFilter(r, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := exp.HistoryExcel(ctx, filter)
		if err != nil {
			log.Error("ошибка формирования Excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName("xlsx"))
		w.Write(excelBytes)
	}
}

func fileName(ext string) string {
	return fmt.Sprintf("Case_History_%s.%s", time.Now().Format("2006-01-02_150405"), ext)
}
