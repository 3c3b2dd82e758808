package get

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"case-tracker/internal/unitseq"
)

type UnitsProvider interface {
	EquivalentUnits(region string, pct float64) (float64, error)
	Regions() []string
}

type response struct {
	Region     string  `json:"region"`
	Production float64 `json:"production"`
	Units      float64 `json:"units"`
}

func EquivalentUnits(log *slog.Logger, units UnitsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.units.get.EquivalentUnits"

		region := r.URL.Query().Get("region")
		if region == "" {
			http.Error(w, "region is required", http.StatusBadRequest)
			return
		}

		pct, err := strconv.ParseFloat(r.URL.Query().Get("production"), 64)
		if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
			http.Error(w, "production must be a number", http.StatusBadRequest)
			return
		}

		value, err := units.EquivalentUnits(region, pct)
		if err != nil {
			if errors.Is(err, unitseq.ErrUnknownRegion) {
				http.Error(w, "unknown region", http.StatusNotFound)
				return
			}
			if errors.Is(err, unitseq.ErrEmptyTable) {
				http.Error(w, "units table is empty for region", http.StatusUnprocessableEntity)
				return
			}
			log.Error("ошибка пересчёта в единицы", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, response{Region: region, Production: pct, Units: value})
	}
}

func Regions(units UnitsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, units.Regions())
	}
}
