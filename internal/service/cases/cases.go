package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"case-tracker/internal/constants"
	"case-tracker/internal/service/production"
	"case-tracker/internal/storage"
)

var (
	ErrEmptyCaseID     = errors.New("case id is required")
	ErrUnknownKind     = errors.New("unknown case kind")
	ErrInvalidReason   = errors.New("unknown downtime reason")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrUnknownStandard = errors.New("no standard time for region/type")
)

type CaseStorage interface {
	SaveCase(ctx context.Context, kind storage.CaseKind, c storage.Case) (int64, error)
	UpdateCase(ctx context.Context, kind storage.CaseKind, c storage.Case) error
	GetCase(ctx context.Context, kind storage.CaseKind, id int64) (*storage.Case, error)
	DeleteCase(ctx context.Context, kind storage.CaseKind, id int64) error
	SaveDowntime(ctx context.Context, d storage.Downtime) (int64, error)
	DeleteDowntime(ctx context.Context, id int64) error
}

type StandardsProvider interface {
	Lookup(region, caseType string) (float64, error)
}

type Input struct {
	CaseID                 string `json:"case_id"`
	Region                 string `json:"region"`
	CaseType               string `json:"case_type"`
	Doctor                 string `json:"doctor"`
	Date                   string `json:"date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	CountsTowardProduction *bool  `json:"counts_toward_production"`
	Comments               string `json:"comments"`
}

type DowntimeInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type Preview struct {
	production.Result
	Band production.Band `json:"band"`
}

type Service struct {
	storage   CaseStorage
	standards StandardsProvider
	now       func() time.Time
}

func NewService(storage CaseStorage, standards StandardsProvider) *Service {
	return &Service{storage: storage, standards: standards, now: time.Now}
}

// Preview считает процент без сохранения (кнопка "Calculate").
func (s *Service) Preview(ctx context.Context, in Input) (Preview, error) {
	res, err := s.evaluate(in)
	if err != nil {
		return Preview{}, err
	}

	return Preview{Result: res, Band: production.DisplayBand(res.Efficiency)}, nil
}

func (s *Service) Register(ctx context.Context, kind storage.CaseKind, in Input) (storage.Case, error) {
	const op = "service.cases.Register"

	c, err := s.build(kind, in)
	if err != nil {
		return storage.Case{}, err
	}

	id, err := s.storage.SaveCase(ctx, kind, c)
	if err != nil {
		return storage.Case{}, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = id

	return c, nil
}

func (s *Service) Edit(ctx context.Context, kind storage.CaseKind, id int64, in Input) (storage.Case, error) {
	const op = "service.cases.Edit"

	if _, err := s.storage.GetCase(ctx, kind, id); err != nil {
		return storage.Case{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := s.build(kind, in)
	if err != nil {
		return storage.Case{}, err
	}
	c.ID = id

	if err := s.storage.UpdateCase(ctx, kind, c); err != nil {
		return storage.Case{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, kind storage.CaseKind, id int64) error {
	const op = "service.cases.Delete"

	if !kind.Valid() {
		return ErrUnknownKind
	}

	if err := s.storage.DeleteCase(ctx, kind, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) AddDowntime(ctx context.Context, in DowntimeInput) (storage.Downtime, error) {
	const op = "service.cases.AddDowntime"

	if !constants.DowntimeReasons[in.Reason] {
		return storage.Downtime{}, fmt.Errorf("%w: %q", ErrInvalidReason, in.Reason)
	}

	// нулевая длительность допустима, как в исходной форме
	duration, err := production.ElapsedMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return storage.Downtime{}, err
	}

	date, err := s.date(in.Date)
	if err != nil {
		return storage.Downtime{}, err
	}

	d := storage.Downtime{
		Date:            date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: duration,
		Reason:          in.Reason,
	}

	id, err := s.storage.SaveDowntime(ctx, d)
	if err != nil {
		return storage.Downtime{}, fmt.Errorf("%s: %w", op, err)
	}
	d.ID = id

	return d, nil
}

func (s *Service) DeleteDowntime(ctx context.Context, id int64) error {
	const op = "service.cases.DeleteDowntime"

	if err := s.storage.DeleteDowntime(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) build(kind storage.CaseKind, in Input) (storage.Case, error) {
	if !kind.Valid() {
		return storage.Case{}, ErrUnknownKind
	}

	res, err := s.evaluate(in)
	if err != nil {
		return storage.Case{}, err
	}

	caseID := strings.TrimSpace(in.CaseID)
	if caseID == "" {
		return storage.Case{}, ErrEmptyCaseID
	}

	date, err := s.date(in.Date)
	if err != nil {
		return storage.Case{}, err
	}

	counted := true
	if in.CountsTowardProduction != nil {
		counted = *in.CountsTowardProduction
	}

	return storage.Case{
		CaseID:                 caseID,
		Region:                 in.Region,
		CaseType:               in.CaseType,
		Doctor:                 strings.TrimSpace(in.Doctor),
		Date:                   date,
		StartTime:              in.StartTime,
		EndTime:                in.EndTime,
		ElapsedMinutes:         res.ElapsedMinutes,
		StandardMinutes:        res.StandardMinutes,
		Efficiency:             res.Efficiency,
		Status:                 res.Status,
		CaseValue:              res.CaseValue,
		CountsTowardProduction: &counted,
		Comments:               strings.TrimSpace(in.Comments),
	}, nil
}

func (s *Service) evaluate(in Input) (production.Result, error) {
	elapsed, err := production.ElapsedMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return production.Result{}, err
	}

	standard, err := s.standards.Lookup(in.Region, in.CaseType)
	if err != nil {
		return production.Result{}, fmt.Errorf("%w: %v", ErrUnknownStandard, err)
	}

	return production.Calculate(standard, elapsed)
}

func (s *Service) date(in string) (string, error) {
	if in == "" {
		return s.now().Format(constants.DateLayout), nil
	}
	if _, err := time.Parse(constants.DateLayout, in); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, in)
	}
	return in, nil
}
