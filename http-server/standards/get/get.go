package get

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"case-tracker/internal/constants"
	"case-tracker/internal/standards"
)

type StandardsProvider interface {
	Snapshot() standards.Table
	Regions() []string
	CaseTypes(region string) ([]string, error)
	AllCaseTypes() []string
}

// GetStandards: таблица целиком для выбора региона и типа на форме.
func GetStandards(provider StandardsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, provider.Snapshot())
	}
}

// GetCaseTypes: без региона отдаёт все типы; если таблица пустая, базовый список.
func GetCaseTypes(provider StandardsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := r.URL.Query().Get("region")

		var types []string
		if region == "" {
			types = provider.AllCaseTypes()
		} else {
			var err error
			types, err = provider.CaseTypes(region)
			if errors.Is(err, standards.ErrUnknownRegion) {
				http.Error(w, "unknown region", http.StatusNotFound)
				return
			}
		}

		if len(types) == 0 {
			types = constants.DefaultCaseTypes
		}

		render.JSON(w, r, map[string]interface{}{
			"regions":    provider.Regions(),
			"case_types": types,
		})
	}
}
