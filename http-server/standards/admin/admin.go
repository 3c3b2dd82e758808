package admin

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"case-tracker/internal/standards"
)

type StandardsEditor interface {
	Snapshot() standards.Table
	Set(region, caseType string, minutes float64) error
	AddType(region, caseType string, minutes float64) error
	DeleteType(region, caseType string) error
	DeleteRegion(region string) error
	Import(r io.Reader) error
	Export(w io.Writer) error
	Save() error
	Reload() error
}

type standardRequest struct {
	Region   string  `json:"region"`
	CaseType string  `json:"case_type"`
	Minutes  float64 `json:"minutes"`
}

func GetStandards(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, editor.Snapshot())
	}
}

// SetStandard меняет значение в памяти; на диск пишет только SaveStandards.
func SetStandard(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.SetStandard"

		var req standardRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		if err := editor.Set(req.Region, req.CaseType, req.Minutes); err != nil {
			writeEditError(w, log, op, err)
			return
		}

		render.JSON(w, r, editor.Snapshot())
	}
}

func AddType(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.AddType"

		var req standardRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		if err := editor.AddType(req.Region, req.CaseType, req.Minutes); err != nil {
			writeEditError(w, log, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, editor.Snapshot())
	}
}

func DeleteType(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.DeleteType"

		if err := editor.DeleteType(chi.URLParam(r, "region"), chi.URLParam(r, "type")); err != nil {
			writeEditError(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteRegion(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.DeleteRegion"

		if err := editor.DeleteRegion(chi.URLParam(r, "region")); err != nil {
			writeEditError(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ImportStandards(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.ImportStandards"

		if err := editor.Import(r.Body); err != nil {
			writeEditError(w, log, op, err)
			return
		}

		log.Info("стандарты импортированы")
		render.JSON(w, r, editor.Snapshot())
	}
}

func ExportStandards(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.ExportStandards"

		var buf bytes.Buffer
		if err := editor.Export(&buf); err != nil {
			log.Error("ошибка экспорта стандартов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=standards.json")
		w.Write(buf.Bytes())
	}
}

func SaveStandards(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.SaveStandards"

		if err := editor.Save(); err != nil {
			log.Error("ошибка сохранения стандартов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Failed to save standard times", http.StatusInternalServerError)
			return
		}

		log.Info("стандарты сохранены")
		render.JSON(w, r, map[string]string{"status": "saved"})
	}
}

func ReloadStandards(log *slog.Logger, editor StandardsEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.standards.admin.ReloadStandards"

		if err := editor.Reload(); err != nil {
			log.Error("ошибка перечитывания стандартов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Failed to reload standard times", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, editor.Snapshot())
	}
}

func writeEditError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, standards.ErrUnknownRegion), errors.Is(err, standards.ErrUnknownCaseType):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, standards.ErrInvalidMinutes),
		errors.Is(err, standards.ErrEmptyCaseType),
		errors.Is(err, standards.ErrInvalidFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("ошибка изменения стандартов", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
