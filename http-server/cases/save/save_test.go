package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/service/cases"
	"case-tracker/internal/service/production"
	"case-tracker/internal/storage"
)

type MockCaseRegistrar struct {
	mock.Mock
}

func (m *MockCaseRegistrar) Preview(ctx context.Context, in cases.Input) (cases.Preview, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(cases.Preview), args.Error(1)
}

func (m *MockCaseRegistrar) Register(ctx context.Context, kind storage.CaseKind, in cases.Input) (storage.Case, error) {
	args := m.Called(ctx, kind, in)
	return args.Get(0).(storage.Case), args.Error(1)
}

const body = `{"case_id":"A-1","region":"NA","case_type":"CR","start_time":"08:00","end_time":"08:50"}`

func TestCalculate_Success(t *testing.T) {
	reg := new(MockCaseRegistrar)
	reg.On("Preview", mock.Anything, mock.MatchedBy(func(in cases.Input) bool {
		return in.Region == "NA" && in.CaseType == "CR"
	})).Return(cases.Preview{
		Result: production.Result{StandardMinutes: 50, ElapsedMinutes: 50, Efficiency: 100, Status: storage.StatusOK},
		Band:   production.BandOK,
	}, nil)

	handler := Calculate(slog.Default(), reg)

	req := httptest.NewRequest(http.MethodPost, "/api/register/calculate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 100.0, resp["efficiency"])
	assert.Equal(t, "OK", resp["band"])
	reg.AssertExpectations(t)
}

func TestCalculate_InvalidTime(t *testing.T) {
	reg := new(MockCaseRegistrar)
	reg.On("Preview", mock.Anything, mock.Anything).Return(cases.Preview{}, production.ErrInvalidTime)

	handler := Calculate(slog.Default(), reg)

	req := httptest.NewRequest(http.MethodPost, "/api/register/calculate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid time")
}

func TestSaveCase_Created(t *testing.T) {
	reg := new(MockCaseRegistrar)
	reg.On("Register", mock.Anything, storage.KindOvertime, mock.MatchedBy(func(in cases.Input) bool {
		return in.CaseID == "A-1"
	})).Return(storage.Case{ID: 7, CaseID: "A-1", Status: storage.StatusOK}, nil)

	handler := SaveCase(slog.Default(), reg, storage.KindOvertime)

	req := httptest.NewRequest(http.MethodPost, "/api/overtime/cases", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp storage.Case
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, int64(7), resp.ID)
	reg.AssertExpectations(t)
}

func TestSaveCase_InvalidJSON(t *testing.T) {
	reg := new(MockCaseRegistrar)
	handler := SaveCase(slog.Default(), reg, storage.KindRegular)

	req := httptest.NewRequest(http.MethodPost, "/api/register/cases", strings.NewReader(`{`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	reg.AssertNotCalled(t, "Register")
}

func TestSaveCase_ValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty case id", cases.ErrEmptyCaseID, "Enter Case ID"},
		{"invalid time", production.ErrInvalidTime, "Invalid time"},
		{"bad clock", production.ErrInvalidClock, "Invalid time"},
		{"no standard", cases.ErrUnknownStandard, "No standard time"},
		{"bad date", cases.ErrInvalidDate, "Invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := new(MockCaseRegistrar)
			reg.On("Register", mock.Anything, storage.KindRegular, mock.Anything).Return(storage.Case{}, tt.err)

			handler := SaveCase(slog.Default(), reg, storage.KindRegular)

			req := httptest.NewRequest(http.MethodPost, "/api/register/cases", strings.NewReader(body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

func TestSaveCase_StorageError(t *testing.T) {
	reg := new(MockCaseRegistrar)
	reg.On("Register", mock.Anything, storage.KindRegular, mock.Anything).
		Return(storage.Case{}, errors.New("storage.mysql.SaveCase: connection refused"))

	handler := SaveCase(slog.Default(), reg, storage.KindRegular)

	req := httptest.NewRequest(http.MethodPost, "/api/register/cases", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
