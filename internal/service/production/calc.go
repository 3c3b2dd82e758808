package production

import (
	"errors"
	"fmt"
	"time"

	"case-tracker/internal/constants"
	"case-tracker/internal/storage"
)

// DailyBaseMinutes: рабочая смена, от которой считается "ценность" кейса.
const DailyBaseMinutes = 408.3

const (
	OKThreshold   = 100.0
	WarnThreshold = 95.0
)

var (
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidStandard = errors.New("standard minutes must be positive")
	ErrInvalidClock    = errors.New("clock time must be HH:MM")
)

// Band только для отображения, в БД пишется Status.
type Band string

const (
	BandOK   Band = "OK"
	BandWarn Band = "WARN"
	BandLow  Band = "LOW"
)

type Result struct {
	StandardMinutes float64 `json:"standard_minutes"`
	ElapsedMinutes  float64 `json:"elapsed_minutes"`
	Efficiency      float64 `json:"efficiency"`
	Status          string  `json:"status"`
	CaseValue       float64 `json:"case_value"`
}

func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(constants.ClockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t, nil
}

// ElapsedMinutes считает разницу end-start; отрицательная разница значит переход через полночь.
func ElapsedMinutes(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	minutes := e.Sub(s).Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}

	return minutes, nil
}

func Calculate(standard, elapsed float64) (Result, error) {
	if elapsed <= 0 {
		return Result{}, ErrInvalidTime
	}
	if standard <= 0 {
		return Result{}, ErrInvalidStandard
	}

	efficiency := standard / elapsed * 100

	status := storage.StatusLow
	if efficiency >= OKThreshold {
		status = storage.StatusOK
	}

	return Result{
		StandardMinutes: standard,
		ElapsedMinutes:  elapsed,
		Efficiency:      efficiency,
		Status:          status,
		CaseValue:       CaseValue(standard),
	}, nil
}

func CaseValue(standard float64) float64 {
	return standard / DailyBaseMinutes * 100
}

func DowntimeValue(minutes float64) float64 {
	return minutes / DailyBaseMinutes * 100
}

func DisplayBand(efficiency float64) Band {
	switch {
	case efficiency >= OKThreshold:
		return BandOK
	case efficiency >= WarnThreshold:
		return BandWarn
	default:
		return BandLow
	}
}

// CaseValueSum суммирует только кейсы, которые идут в производство.
func CaseValueSum(cases []storage.Case) float64 {
	var sum float64
	for _, c := range cases {
		if c.Counted() {
			sum += c.CaseValue
		}
	}
	return sum
}

func DowntimeMinutes(downtimes []storage.Downtime) float64 {
	var sum float64
	for _, d := range downtimes {
		sum += d.DurationMinutes
	}
	return sum
}

func DailyTotal(cases []storage.Case, downtimes []storage.Downtime) float64 {
	return CaseValueSum(cases) + DowntimeValue(DowntimeMinutes(downtimes))
}
