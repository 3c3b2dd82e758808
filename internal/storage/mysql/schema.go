package mysql

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cases (
		id INT AUTO_INCREMENT PRIMARY KEY,
		case_id VARCHAR(64) NOT NULL,
		region VARCHAR(64) NOT NULL,
		tipo_caso VARCHAR(64) NOT NULL,
		doctor VARCHAR(128) NULL,
		fecha CHAR(10) NOT NULL,
		hora_inicio CHAR(5) NOT NULL,
		hora_fin CHAR(5) NOT NULL,
		tiempo_real DOUBLE NOT NULL,
		std_time DOUBLE NOT NULL,
		efficiency DOUBLE NOT NULL,
		estado VARCHAR(8) NOT NULL,
		case_value DOUBLE NOT NULL,
		count_production TINYINT(1) NULL DEFAULT 1,
		comments TEXT NULL,
		INDEX idx_cases_fecha (fecha)
	)`,
	`CREATE TABLE IF NOT EXISTS ot_cases (
		id INT AUTO_INCREMENT PRIMARY KEY,
		case_id VARCHAR(64) NOT NULL,
		region VARCHAR(64) NOT NULL,
		tipo_caso VARCHAR(64) NOT NULL,
		doctor VARCHAR(128) NULL,
		fecha CHAR(10) NOT NULL,
		hora_inicio CHAR(5) NOT NULL,
		hora_fin CHAR(5) NOT NULL,
		tiempo_real DOUBLE NOT NULL,
		std_time DOUBLE NOT NULL,
		efficiency DOUBLE NOT NULL,
		estado VARCHAR(8) NOT NULL,
		case_value DOUBLE NOT NULL,
		count_production TINYINT(1) NULL DEFAULT 1,
		comments TEXT NULL,
		INDEX idx_ot_cases_fecha (fecha)
	)`,
	`CREATE TABLE IF NOT EXISTS downtimes (
		id INT AUTO_INCREMENT PRIMARY KEY,
		fecha CHAR(10) NOT NULL,
		hora_inicio CHAR(5) NOT NULL,
		hora_fin CHAR(5) NOT NULL,
		razon VARCHAR(64) NOT NULL,
		duracion DOUBLE NOT NULL,
		INDEX idx_downtimes_fecha (fecha)
	)`,
}

// Init создаёт таблицы, если их ещё нет.
func (s *Storage) Init(ctx context.Context) error {
	const op = "storage.mysql.Init"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: ошибка создания схемы: %w", op, err)
		}
	}

	return nil
}
