package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"case-tracker/internal/storage"
)

var caseTables = map[storage.CaseKind]string{
	storage.KindRegular:  "cases",
	storage.KindOvertime: "ot_cases",
}

const caseColumns = `id, case_id, region, tipo_caso, doctor, fecha, hora_inicio, hora_fin,
	tiempo_real, std_time, efficiency, estado, case_value, count_production, comments`

func tableFor(kind storage.CaseKind) (string, error) {
	table, ok := caseTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown case kind %q", kind)
	}
	return table, nil
}

func orderFor(kind storage.CaseKind) string {
	if kind == storage.KindOvertime {
		return " ORDER BY id DESC"
	}
	return " ORDER BY fecha DESC, hora_inicio DESC"
}

func (s *Storage) SaveCase(ctx context.Context, kind storage.CaseKind, c storage.Case) (int64, error) {
	const op = "storage.mysql.SaveCase"

	table, err := tableFor(kind)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	stmt := `INSERT INTO ` + table + ` (
		case_id, region, tipo_caso, doctor, fecha, hora_inicio, hora_fin,
		tiempo_real, std_time, efficiency, estado, case_value, count_production, comments
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt,
		c.CaseID,
		c.Region,
		c.CaseType,
		c.Doctor,
		c.Date,
		c.StartTime,
		c.EndTime,
		c.ElapsedMinutes,
		c.StandardMinutes,
		c.Efficiency,
		c.Status,
		c.CaseValue,
		c.Counted(),
		c.Comments,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения кейса %s: %w", op, c.CaseID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

// UpdateCase не проверяет RowsAffected: MySQL вернёт 0 для неизменённой строки.
func (s *Storage) UpdateCase(ctx context.Context, kind storage.CaseKind, c storage.Case) error {
	const op = "storage.mysql.UpdateCase"

	table, err := tableFor(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stmt := `UPDATE ` + table + ` SET
		case_id = ?, region = ?, tipo_caso = ?, doctor = ?, fecha = ?, hora_inicio = ?, hora_fin = ?,
		tiempo_real = ?, std_time = ?, efficiency = ?, estado = ?, case_value = ?,
		count_production = ?, comments = ?
	WHERE id = ?`

	_, err = s.db.ExecContext(ctx, stmt,
		c.CaseID,
		c.Region,
		c.CaseType,
		c.Doctor,
		c.Date,
		c.StartTime,
		c.EndTime,
		c.ElapsedMinutes,
		c.StandardMinutes,
		c.Efficiency,
		c.Status,
		c.CaseValue,
		c.Counted(),
		c.Comments,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления кейса id=%d: %w", op, c.ID, err)
	}

	return nil
}

func (s *Storage) DeleteCase(ctx context.Context, kind storage.CaseKind, id int64) error {
	const op = "storage.mysql.DeleteCase"

	table, err := tableFor(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления кейса id=%d: %w", op, id, err)
	}

	return checkAffected(op, res, storage.ErrCaseNotFound)
}

func (s *Storage) GetCase(ctx context.Context, kind storage.CaseKind, id int64) (*storage.Case, error) {
	const op = "storage.mysql.GetCase"

	table, err := tableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM `+table+` WHERE id = ?`, id)

	c, err := scanCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrCaseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *Storage) ListCases(ctx context.Context, kind storage.CaseKind, filter storage.CaseFilter) ([]storage.Case, error) {
	const op = "storage.mysql.ListCases"

	table, err := tableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	where, args := caseWhere(filter)
	query := `SELECT ` + caseColumns + ` FROM ` + table + where + orderFor(kind)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения кейсов: %w", op, err)
	}
	defer rows.Close()

	cases := []storage.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		cases = append(cases, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cases, nil
}

// DistinctRegions и DistinctCaseTypes наполняют фильтры вкладки Production.
func (s *Storage) DistinctRegions(ctx context.Context, kind storage.CaseKind) ([]string, error) {
	return s.distinct(ctx, "storage.mysql.DistinctRegions", kind, "region")
}

func (s *Storage) DistinctCaseTypes(ctx context.Context, kind storage.CaseKind) ([]string, error) {
	return s.distinct(ctx, "storage.mysql.DistinctCaseTypes", kind, "tipo_caso")
}

func (s *Storage) distinct(ctx context.Context, op string, kind storage.CaseKind, column string) ([]string, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT `+column+` FROM `+table+` ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

func caseWhere(f storage.CaseFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Date != "" {
		conds = append(conds, "fecha = ?")
		args = append(args, f.Date)
	}
	if f.From != "" {
		conds = append(conds, "fecha >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "fecha <= ?")
		args = append(args, f.To)
	}
	if f.Region != "" {
		conds = append(conds, "region = ?")
		args = append(args, f.Region)
	}
	if f.CaseType != "" {
		conds = append(conds, "tipo_caso = ?")
		args = append(args, f.CaseType)
	}
	if f.Doctor != "" {
		conds = append(conds, "LOWER(doctor) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Doctor)+"%")
	}
	if f.CaseID != "" {
		conds = append(conds, "LOWER(case_id) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.CaseID)+"%")
	}
	if f.Status != "" {
		conds = append(conds, "estado = ?")
		args = append(args, f.Status)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row scanner) (*storage.Case, error) {
	var (
		c        storage.Case
		doctor   sql.NullString
		comments sql.NullString
		counted  sql.NullBool
	)

	err := row.Scan(
		&c.ID,
		&c.CaseID,
		&c.Region,
		&c.CaseType,
		&doctor,
		&c.Date,
		&c.StartTime,
		&c.EndTime,
		&c.ElapsedMinutes,
		&c.StandardMinutes,
		&c.Efficiency,
		&c.Status,
		&c.CaseValue,
		&counted,
		&comments,
	)
	if err != nil {
		return nil, err
	}

	c.Doctor = doctor.String
	c.Comments = comments.String
	if counted.Valid {
		v := counted.Bool
		c.CountsTowardProduction = &v
	}

	return &c, nil
}

func checkAffected(op string, res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return nil
}
