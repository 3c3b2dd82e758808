package production

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"case-tracker/internal/storage"
)

type Storage interface {
	ListCases(ctx context.Context, kind storage.CaseKind, filter storage.CaseFilter) ([]storage.Case, error)
	ListDowntimes(ctx context.Context, date string) ([]storage.Downtime, error)
}

type UnitsTable interface {
	EquivalentUnits(region string, pct float64) (float64, error)
}

type Stats struct {
	Count         int     `json:"count"`
	OK            int     `json:"ok"`
	Low           int     `json:"low"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	CaseValue     float64 `json:"case_value"`
}

type DailyProduction struct {
	Date            string             `json:"date"`
	Total           float64            `json:"total"`
	Stats           Stats              `json:"stats"`
	DowntimeMinutes float64            `json:"downtime_minutes"`
	DowntimeValue   float64            `json:"downtime_value"`
	Cases           []storage.Case     `json:"cases"`
	Downtimes       []storage.Downtime `json:"downtimes"`
}

type RegionUnits struct {
	Region string  `json:"region"`
	Value  float64 `json:"value"`
	Units  float64 `json:"units"`
}

type OvertimeProduction struct {
	Date       string         `json:"date"`
	Total      float64        `json:"total"`
	TotalUnits float64        `json:"total_units"`
	Regions    []RegionUnits  `json:"regions"`
	Skipped    []string       `json:"skipped,omitempty"`
	Cases      []storage.Case `json:"cases"`
}

type DayGroup struct {
	Date  string         `json:"date"`
	Count int            `json:"count"`
	Value float64        `json:"value"`
	Cases []storage.Case `json:"cases"`
}

type ProductionReport struct {
	Days  []DayGroup `json:"days"`
	Stats Stats      `json:"stats"`
}

type Service struct {
	storage Storage
	units   UnitsTable
}

func NewService(storage Storage, units UnitsTable) *Service {
	return &Service{storage: storage, units: units}
}

func (s *Service) Daily(ctx context.Context, date string) (DailyProduction, error) {
	const op = "service.production.Daily"

	var (
		cases     []storage.Case
		downtimes []storage.Downtime
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cases, err = s.storage.ListCases(gCtx, storage.KindRegular, storage.CaseFilter{Date: date})
		if err != nil {
			return fmt.Errorf("cases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		downtimes, err = s.storage.ListDowntimes(gCtx, date)
		if err != nil {
			return fmt.Errorf("downtimes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return DailyProduction{}, fmt.Errorf("%s: %w", op, err)
	}

	minutes := DowntimeMinutes(downtimes)

	return DailyProduction{
		Date:            date,
		Total:           DailyTotal(cases, downtimes),
		Stats:           Summarize(cases),
		DowntimeMinutes: minutes,
		DowntimeValue:   DowntimeValue(minutes),
		Cases:           cases,
		Downtimes:       downtimes,
	}, nil
}

// Overtime: единицы считаются отдельно по каждому региону, регионы без таблицы пропускаются.
func (s *Service) Overtime(ctx context.Context, date string) (OvertimeProduction, error) {
	const op = "service.production.Overtime"

	cases, err := s.storage.ListCases(ctx, storage.KindOvertime, storage.CaseFilter{Date: date})
	if err != nil {
		return OvertimeProduction{}, fmt.Errorf("%s: %w", op, err)
	}

	byRegion := map[string]float64{}
	for _, c := range cases {
		if c.Counted() {
			byRegion[c.Region] += c.CaseValue
		}
	}

	out := OvertimeProduction{
		Date:    date,
		Total:   CaseValueSum(cases),
		Regions: []RegionUnits{},
		Cases:   cases,
	}

	regions := make([]string, 0, len(byRegion))
	for r := range byRegion {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	for _, region := range regions {
		value := byRegion[region]
		units, err := s.units.EquivalentUnits(region, value)
		if err != nil {
			out.Skipped = append(out.Skipped, region)
			continue
		}
		out.Regions = append(out.Regions, RegionUnits{Region: region, Value: value, Units: units})
		out.TotalUnits += units
	}

	return out, nil
}

// Range: вкладка Production: кейсы по фильтру, сгруппированные по дате от новых к старым.
func (s *Service) Range(ctx context.Context, filter storage.CaseFilter) (ProductionReport, error) {
	const op = "service.production.Range"

	cases, err := s.storage.ListCases(ctx, storage.KindRegular, filter)
	if err != nil {
		return ProductionReport{}, fmt.Errorf("%s: %w", op, err)
	}

	index := map[string]int{}
	days := []DayGroup{}
	for _, c := range cases {
		i, ok := index[c.Date]
		if !ok {
			i = len(days)
			index[c.Date] = i
			days = append(days, DayGroup{Date: c.Date})
		}
		days[i].Count++
		if c.Counted() {
			days[i].Value += c.CaseValue
		}
		days[i].Cases = append(days[i].Cases, c)
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return ProductionReport{Days: days, Stats: Summarize(cases)}, nil
}

func Summarize(cases []storage.Case) Stats {
	st := Stats{Count: len(cases), CaseValue: CaseValueSum(cases)}
	if len(cases) == 0 {
		return st
	}

	var eff float64
	for _, c := range cases {
		eff += c.Efficiency
		if c.Status == storage.StatusOK {
			st.OK++
		} else {
			st.Low++
		}
	}
	st.AvgEfficiency = eff / float64(len(cases))

	return st
}
