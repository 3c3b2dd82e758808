package mysql

import (
	"context"
	"fmt"

	"case-tracker/internal/storage"
)

func (s *Storage) SaveDowntime(ctx context.Context, d storage.Downtime) (int64, error) {
	const op = "storage.mysql.SaveDowntime"

	stmt := `INSERT INTO downtimes (fecha, hora_inicio, hora_fin, razon, duracion) VALUES (?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, d.Date, d.StartTime, d.EndTime, d.Reason, d.DurationMinutes)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения простоя: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) DeleteDowntime(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteDowntime"

	res, err := s.db.ExecContext(ctx, `DELETE FROM downtimes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления простоя id=%d: %w", op, id, err)
	}

	return checkAffected(op, res, storage.ErrDowntimeNotFound)
}

func (s *Storage) ListDowntimes(ctx context.Context, date string) ([]storage.Downtime, error) {
	const op = "storage.mysql.ListDowntimes"

	query := `
		SELECT id, fecha, hora_inicio, hora_fin, duracion, razon
		FROM downtimes
		WHERE fecha = ?
		ORDER BY hora_inicio DESC`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения простоев за %s: %w", op, date, err)
	}
	defer rows.Close()

	downtimes := []storage.Downtime{}
	for rows.Next() {
		var d storage.Downtime
		if err := rows.Scan(&d.ID, &d.Date, &d.StartTime, &d.EndTime, &d.DurationMinutes, &d.Reason); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		downtimes = append(downtimes, d)
	}

	return downtimes, rows.Err()
}
