package mysql

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var caseCols = []string{
	"id", "case_id", "region", "tipo_caso", "doctor", "fecha", "hora_inicio", "hora_fin",
	"tiempo_real", "std_time", "efficiency", "estado", "case_value", "count_production", "comments",
}

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewWithDB(db), mock
}
