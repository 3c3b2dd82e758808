// Package unitseq converts a production percentage into equivalent units
// using a per-region {threshold% -> units} table.
package unitseq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

var (
	ErrEmptyTable    = errors.New("units table is empty")
	ErrUnknownRegion = errors.New("unknown region")
)

type Point struct {
	Threshold float64 `json:"threshold"`
	Units     float64 `json:"units"`
}

// Table: регион -> точки, отсортированные по порогу.
type Table map[string][]Point

func Load(path string) (Table, error) {
	const op = "unitseq.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return t, nil
}

func Parse(r io.Reader) (Table, error) {
	var raw map[string]map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode units table: %w", err)
	}

	table := make(Table, len(raw))
	for region, thresholds := range raw {
		points := make([]Point, 0, len(thresholds))
		for key, units := range thresholds {
			threshold, err := strconv.ParseFloat(key, 64)
			if err != nil {
				return nil, fmt.Errorf("region %s: threshold %q is not a number", region, key)
			}
			points = append(points, Point{Threshold: threshold, Units: units})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Threshold < points[j].Threshold })
		table[region] = points
	}

	return table, nil
}

func (t Table) Regions() []string {
	regions := make([]string, 0, len(t))
	for r := range t {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func (t Table) EquivalentUnits(region string, pct float64) (float64, error) {
	points, ok := t[region]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	return Interpolate(points, pct)
}

// Interpolate expects points sorted by threshold. Outside the table it extends
// the nearest end segment; below the lowest threshold the result never drops
// under zero. A single point scales proportionally through the origin.
func Interpolate(points []Point, pct float64) (float64, error) {
	switch len(points) {
	case 0:
		return 0, ErrEmptyTable
	case 1:
		p := points[0]
		if p.Threshold == 0 {
			return p.Units, nil
		}
		return floor(p.Units * pct / p.Threshold), nil
	}

	first, last := points[0], points[len(points)-1]

	if pct < first.Threshold {
		return floor(line(first, points[1], pct)), nil
	}
	if pct > last.Threshold {
		return line(points[len(points)-2], last, pct), nil
	}

	for i := 0; i < len(points)-1; i++ {
		lo, hi := points[i], points[i+1]
		if pct == lo.Threshold {
			return lo.Units, nil
		}
		if pct == hi.Threshold {
			return hi.Units, nil
		}
		if pct > lo.Threshold && pct < hi.Threshold {
			return line(lo, hi, pct), nil
		}
	}

	// недостижимо для отсортированной таблицы
	return last.Units, nil
}

func line(a, b Point, x float64) float64 {
	if b.Threshold == a.Threshold {
		return a.Units
	}
	slope := (b.Units - a.Units) / (b.Threshold - a.Threshold)
	return a.Units + slope*(x-a.Threshold)
}

func floor(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
