package downtime

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/service/cases"
	"case-tracker/internal/storage"
)

type MockDowntimeManager struct {
	mock.Mock
}

func (m *MockDowntimeManager) AddDowntime(ctx context.Context, in cases.DowntimeInput) (storage.Downtime, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(storage.Downtime), args.Error(1)
}

func (m *MockDowntimeManager) DeleteDowntime(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDowntimeManager) ListDowntimes(ctx context.Context, date string) ([]storage.Downtime, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]storage.Downtime), args.Error(1)
}

func TestSave(t *testing.T) {
	manager := new(MockDowntimeManager)
	manager.On("AddDowntime", mock.Anything, cases.DowntimeInput{StartTime: "12:00", EndTime: "12:30", Reason: "Lunch"}).
		Return(storage.Downtime{ID: 1, StartTime: "12:00", EndTime: "12:30", DurationMinutes: 30, Reason: "Lunch"}, nil)

	handler := Save(slog.Default(), manager)

	req := httptest.NewRequest(http.MethodPost, "/api/downtimes", strings.NewReader(`{"start_time":"12:00","end_time":"12:30","reason":"Lunch"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var d storage.Downtime
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &d))
	assert.Equal(t, 30.0, d.DurationMinutes)
}

func TestSave_BadReason(t *testing.T) {
	manager := new(MockDowntimeManager)
	manager.On("AddDowntime", mock.Anything, mock.Anything).Return(storage.Downtime{}, cases.ErrInvalidReason)

	handler := Save(slog.Default(), manager)

	req := httptest.NewRequest(http.MethodPost, "/api/downtimes", strings.NewReader(`{"start_time":"12:00","end_time":"12:30","reason":"Nap"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid downtime reason")
}

func TestList(t *testing.T) {
	manager := new(MockDowntimeManager)
	manager.On("ListDowntimes", mock.Anything, "2026-10-14").Return([]storage.Downtime{{ID: 1}, {ID: 2}}, nil)

	handler := List(slog.Default(), manager)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/downtimes?date=2026-10-14", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var list []storage.Downtime
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &list))
	assert.Len(t, list, 2)
}

func TestDelete(t *testing.T) {
	manager := new(MockDowntimeManager)
	manager.On("DeleteDowntime", mock.Anything, int64(1)).Return(nil)
	manager.On("DeleteDowntime", mock.Anything, int64(2)).Return(storage.ErrDowntimeNotFound)

	r := chi.NewRouter()
	r.Delete("/api/downtimes/{id}", Delete(slog.Default(), manager))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/downtimes/1", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/downtimes/2", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReasons(t *testing.T) {
	rr := httptest.NewRecorder()
	Reasons().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/downtimes/reasons", nil))

	var reasons []string
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &reasons))
	assert.Equal(t, []string{"Break", "Lunch", "Equipment Issue", "Meeting", "Other"}, reasons)
}
