package get

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/constants"
	"case-tracker/internal/standards"
)

func newStore(t *testing.T, doc string) *standards.Store {
	t.Helper()

	s := standards.New("unused.json")
	require.NoError(t, s.Import(strings.NewReader(doc)))
	return s
}

type typesResponse struct {
	Regions   []string `json:"regions"`
	CaseTypes []string `json:"case_types"`
}

func TestGetCaseTypes(t *testing.T) {
	s := newStore(t, `{"LATAM": {"Aligners": {"Primary": 28.5}}, "NA": {"Aligners": {"CR": 20}}}`)
	handler := GetCaseTypes(s)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/standards/types?region=NA", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp typesResponse
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, []string{"CR"}, resp.CaseTypes)
	assert.Equal(t, []string{"LATAM", "NA"}, resp.Regions)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/standards/types", nil))
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, []string{"CR", "Primary"}, resp.CaseTypes)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/standards/types?region=EMEA", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetCaseTypes_FallsBackToDefaults(t *testing.T) {
	s := newStore(t, `{"NA": {"Aligners": {}}}`)

	rr := httptest.NewRecorder()
	GetCaseTypes(s).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/standards/types?region=NA", nil))

	var resp typesResponse
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, constants.DefaultCaseTypes, resp.CaseTypes)
}

func TestGetStandards(t *testing.T) {
	s := newStore(t, `{"NA": {"Aligners": {"CR": 20}}}`)

	rr := httptest.NewRecorder()
	GetStandards(s).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/standards", nil))

	assert.JSONEq(t, `{"NA": {"CR": 20}}`, rr.Body.String())
}
