package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/storage"
)

func TestSaveDowntime(t *testing.T) {
	s, mock := newMockStorage(t)

	d := storage.Downtime{Date: "2026-10-14", StartTime: "12:00", EndTime: "12:30", DurationMinutes: 30, Reason: "Lunch"}

	mock.ExpectExec(`INSERT INTO downtimes`).
		WithArgs("2026-10-14", "12:00", "12:30", "Lunch", 30.0).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := s.SaveDowntime(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestDeleteDowntime_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`DELETE FROM downtimes WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteDowntime(context.Background(), 3)
	assert.ErrorIs(t, err, storage.ErrDowntimeNotFound)
}

func TestListDowntimes(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"id", "fecha", "hora_inicio", "hora_fin", "duracion", "razon"}).
		AddRow(2, "2026-10-14", "15:00", "15:10", 10.0, "Break").
		AddRow(1, "2026-10-14", "12:00", "12:30", 30.0, "Lunch")

	mock.ExpectQuery(`FROM downtimes\s+WHERE fecha = \?\s+ORDER BY hora_inicio DESC`).
		WithArgs("2026-10-14").
		WillReturnRows(rows)

	downtimes, err := s.ListDowntimes(context.Background(), "2026-10-14")
	require.NoError(t, err)
	require.Len(t, downtimes, 2)
	assert.Equal(t, "Break", downtimes[0].Reason)
	assert.Equal(t, 30.0, downtimes[1].DurationMinutes)
}
