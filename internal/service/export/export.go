package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"case-tracker/internal/storage"
)

const HistorySheet = "History"

var HistoryHeader = []string{
	"ID", "Case", "Region", "Case Type",
	"Date", "Time (min)", "Std (min)", "Efficiency (%)", "Status", "Case Value (%)",
}

type HistoryStorage interface {
	ListCases(ctx context.Context, kind storage.CaseKind, filter storage.CaseFilter) ([]storage.Case, error)
}

type Service struct {
	storage HistoryStorage
}

func NewService(storage HistoryStorage) *Service {
	return &Service{storage: storage}
}

func (s *Service) HistoryCSV(ctx context.Context, filter storage.CaseFilter, w io.Writer) error {
	const op = "service.export.HistoryCSV"

	cases, err := s.storage.ListCases(ctx, storage.KindRegular, filter)
	if err != nil {
		return fmt.Errorf("%s: fetch data: %w", op, err)
	}

	if err := WriteHistoryCSV(w, cases); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) HistoryExcel(ctx context.Context, filter storage.CaseFilter) ([]byte, error) {
	const op = "service.export.HistoryExcel"

	cases, err := s.storage.ListCases(ctx, storage.KindRegular, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	var buf bytes.Buffer
	if err := WriteHistoryExcel(&buf, cases); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// WriteHistoryCSV пишет числа без округления, как они лежат в БД.
func WriteHistoryCSV(w io.Writer, cases []storage.Case) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(HistoryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, c := range cases {
		if err := cw.Write(historyRow(c)); err != nil {
			return fmt.Errorf("write case %s: %w", c.CaseID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteHistoryExcel(w io.Writer, cases []storage.Case) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return fmt.Errorf("sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}

	for i, name := range HistoryHeader {
		f.SetCellValue(HistorySheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(HistorySheet, "A1", cellName(len(HistoryHeader), 1), headerStyle)

	for i, c := range cases {
		row := i + 2
		f.SetCellValue(HistorySheet, cellName(1, row), c.ID)
		f.SetCellValue(HistorySheet, cellName(2, row), c.CaseID)
		f.SetCellValue(HistorySheet, cellName(3, row), c.Region)
		f.SetCellValue(HistorySheet, cellName(4, row), c.CaseType)
		f.SetCellValue(HistorySheet, cellName(5, row), c.Date)
		f.SetCellValue(HistorySheet, cellName(6, row), c.ElapsedMinutes)
		f.SetCellValue(HistorySheet, cellName(7, row), c.StandardMinutes)
		f.SetCellValue(HistorySheet, cellName(8, row), c.Efficiency)
		f.SetCellValue(HistorySheet, cellName(9, row), c.Status)
		f.SetCellValue(HistorySheet, cellName(10, row), c.CaseValue)
	}

	// закрепляем шапку
	f.SetPanes(HistorySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(HistorySheet, "A", "J", 14)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func historyRow(c storage.Case) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.CaseID,
		c.Region,
		c.CaseType,
		c.Date,
		formatFloat(c.ElapsedMinutes),
		formatFloat(c.StandardMinutes),
		formatFloat(c.Efficiency),
		c.Status,
		formatFloat(c.CaseValue),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
