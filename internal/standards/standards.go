package standards

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// VesselAligners: единственный тип "vaso" в файле стандартов.
const VesselAligners = "Aligners"

var (
	ErrUnknownRegion   = errors.New("unknown region")
	ErrUnknownCaseType = errors.New("unknown case type")
	ErrInvalidMinutes  = errors.New("standard minutes must be positive")
	ErrEmptyCaseType   = errors.New("case type name is required")
	ErrInvalidFormat   = errors.New(`invalid standards format, expected {"Region": {"Aligners": {"Type": minutes}}}`)
)

// Table: регион -> тип кейса -> стандартные минуты.
type Table map[string]map[string]float64

type Store struct {
	mu    sync.RWMutex
	path  string
	table Table
}

func New(path string) *Store {
	return &Store{path: path, table: Table{}}
}

// Load читает файл стандартов; ошибка чтения оставляет стор пустым.
func Load(path string) (*Store, error) {
	s := New(path)
	if err := s.Reload(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Reload() error {
	const op = "standards.Reload"

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	table, err := decode(f)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.path, err)
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	return nil
}

// Save перезаписывает файл целиком через временный файл в том же каталоге.
func (s *Store) Save() error {
	const op = "standards.Save"

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Export(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Lookup(region, caseType string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types, ok := s.table[region]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	minutes, ok := types[caseType]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnknownCaseType, region, caseType)
	}

	return minutes, nil
}

func (s *Store) Regions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := make([]string, 0, len(s.table))
	for r := range s.table {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func (s *Store) CaseTypes(region string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types, ok := s.table[region]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	return sortedKeys(types), nil
}

// AllCaseTypes: объединение типов по всем регионам, для фильтра "All Types".
func (s *Store) AllCaseTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := map[string]float64{}
	for _, types := range s.table {
		for t := range types {
			all[t] = 0
		}
	}
	return sortedKeys(all)
}

func (s *Store) Snapshot() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.table.clone()
}

func (s *Store) Set(region, caseType string, minutes float64) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	types, ok := s.table[region]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	if _, ok := types[caseType]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownCaseType, region, caseType)
	}

	types[caseType] = minutes
	return nil
}

func (s *Store) AddType(region, caseType string, minutes float64) error {
	caseType = strings.TrimSpace(caseType)
	if caseType == "" {
		return ErrEmptyCaseType
	}
	if minutes <= 0 {
		return ErrInvalidMinutes
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	types, ok := s.table[region]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	if types == nil {
		types = map[string]float64{}
		s.table[region] = types
	}

	types[caseType] = minutes
	return nil
}

func (s *Store) DeleteType(region, caseType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	types, ok := s.table[region]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	if _, ok := types[caseType]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownCaseType, region, caseType)
	}

	delete(types, caseType)
	return nil
}

func (s *Store) DeleteRegion(region string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.table[region]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	delete(s.table, region)
	return nil
}

// Import проверяет только форму документа, значения не валидируются.
func (s *Store) Import(r io.Reader) error {
	table, err := decode(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	return nil
}

func (s *Store) Export(w io.Writer) error {
	s.mu.RLock()
	doc := make(map[string]map[string]map[string]float64, len(s.table))
	for region, types := range s.table {
		inner := make(map[string]float64, len(types))
		for t, m := range types {
			inner[t] = m
		}
		doc[region] = map[string]map[string]float64{VesselAligners: inner}
	}
	s.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}

func decode(r io.Reader) (Table, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	table := make(Table, len(doc))
	for region, raw := range doc {
		var vessels map[string]json.RawMessage
		if err := json.Unmarshal(raw, &vessels); err != nil || vessels == nil {
			return nil, fmt.Errorf("%w: region %s is not an object", ErrInvalidFormat, region)
		}

		aligners, ok := vessels[VesselAligners]
		if !ok {
			return nil, fmt.Errorf("%w: region %s has no %s", ErrInvalidFormat, region, VesselAligners)
		}

		var types map[string]float64
		if err := json.Unmarshal(aligners, &types); err != nil || types == nil {
			return nil, fmt.Errorf("%w: region %s: %s is not an object", ErrInvalidFormat, region, VesselAligners)
		}

		table[region] = types
	}

	return table, nil
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for region, types := range t {
		inner := make(map[string]float64, len(types))
		for k, v := range types {
			inner[k] = v
		}
		out[region] = inner
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
