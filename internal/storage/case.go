package storage

import "errors"

var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrDowntimeNotFound = errors.New("downtime not found")
)

// CaseKind выбирает таблицу: обычные кейсы или сверхурочные (OT).
type CaseKind string

const (
	KindRegular  CaseKind = "regular"
	KindOvertime CaseKind = "overtime"
)

func (k CaseKind) Valid() bool {
	return k == KindRegular || k == KindOvertime
}

const (
	StatusOK  = "OK"
	StatusLow = "LOW"
)

type Case struct {
	ID                     int64   `json:"id"`
	CaseID                 string  `json:"case_id"`
	Region                 string  `json:"region"`
	CaseType               string  `json:"case_type"`
	Doctor                 string  `json:"doctor"`
	Date                   string  `json:"date"`
	StartTime              string  `json:"start_time"`
	EndTime                string  `json:"end_time"`
	ElapsedMinutes         float64 `json:"elapsed_minutes"`
	StandardMinutes        float64 `json:"standard_minutes"`
	Efficiency             float64 `json:"efficiency"`
	Status                 string  `json:"status"`
	CaseValue              float64 `json:"case_value"`
	CountsTowardProduction *bool   `json:"counts_toward_production"`
	Comments               string  `json:"comments,omitempty"`
}

// Counted: пустой флаг считается как true.
func (c Case) Counted() bool {
	return c.CountsTowardProduction == nil || *c.CountsTowardProduction
}

type CaseFilter struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	Region   string `json:"region"`
	CaseType string `json:"case_type"`
	Doctor   string `json:"doctor"`
	CaseID   string `json:"case_id"`
	Status   string `json:"status"`
}
