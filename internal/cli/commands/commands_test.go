package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/storage"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCalc_WithStandard(t *testing.T) {
	out, err := execute(t, NewCalcCmd(""), "--standard", "30", "--start", "08:00", "--end", "09:00")
	require.NoError(t, err)

	assert.Contains(t, out, "Efficiency: 50.0% (LOW)")
	assert.Contains(t, out, "Status:     LOW")
}

func TestCalc_LookupAcrossMidnight(t *testing.T) {
	path := writeFile(t, "standards.json", `{"LATAM": {"Aligners": {"Primary": 28.5}}}`)

	out, err := execute(t, NewCalcCmd(path), "--region", "LATAM", "--type", "Primary", "--start", "23:50", "--end", "00:15")
	require.NoError(t, err)

	assert.Contains(t, out, "Elapsed:    25.0 min")
	assert.Contains(t, out, "Status:     OK")
	assert.Contains(t, out, "Case value: 6.980%")
}

func TestCalc_Errors(t *testing.T) {
	_, err := execute(t, NewCalcCmd(""), "--start", "08:00", "--end", "09:00")
	assert.Error(t, err)

	_, err = execute(t, NewCalcCmd(""), "--standard", "30", "--start", "08:00", "--end", "08:00")
	assert.Error(t, err)
}

func TestUnits(t *testing.T) {
	path := writeFile(t, "units_eq.json", `{"NA": {"80": 10.4, "100": 13.0, "120": 15.6}}`)

	out, err := execute(t, NewUnitsCmd(path), "--region", "NA", "--production", "110")
	require.NoError(t, err)
	assert.Equal(t, "NA 110.00% = 14.30 units\n", out)

	_, err = execute(t, NewUnitsCmd(path), "--region", "EMEA", "--production", "110")
	assert.Error(t, err)
}

func TestStandardsValidate(t *testing.T) {
	good := writeFile(t, "good.json", `{"NA": {"Aligners": {"CR": 20, "Primary": 30}}}`)
	out, err := execute(t, NewStandardsCmd(good), "validate")
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 regions, 2 standards\n", out)

	bad := writeFile(t, "bad.json", `{"NA": {"Aligners": {"CR": 0}}}`)
	_, err = execute(t, NewStandardsCmd(bad), "validate")
	assert.ErrorContains(t, err, "NA/CR")

	shape := writeFile(t, "shape.json", `{"NA": {"CR": 20}}`)
	_, err = execute(t, NewStandardsCmd(shape), "validate")
	assert.Error(t, err)
}

func TestStandardsExport(t *testing.T) {
	path := writeFile(t, "standards.json", `{"NA": {"Aligners": {"CR": 20}}}`)

	out, err := execute(t, NewStandardsCmd(path), "export")
	require.NoError(t, err)
	assert.JSONEq(t, `{"NA": {"Aligners": {"CR": 20}}}`, out)
}

type MockHistoryExporter struct {
	mock.Mock
}

func (m *MockHistoryExporter) HistoryCSV(ctx context.Context, filter storage.CaseFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	_, _ = io.WriteString(w, "ID,Case\n")
	return args.Error(0)
}

func (m *MockHistoryExporter) HistoryExcel(ctx context.Context, filter storage.CaseFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type nopCloser struct{ closed bool }

func (c *nopCloser) Close() error {
	c.closed = true
	return nil
}

func opener(exp HistoryExporter, closer *nopCloser) HistoryOpener {
	return func() (HistoryExporter, io.Closer, error) {
		return exp, closer, nil
	}
}

func TestHistoryExport_CSVToStdout(t *testing.T) {
	exp := new(MockHistoryExporter)
	closer := &nopCloser{}
	exp.On("HistoryCSV", mock.Anything, storage.CaseFilter{Status: "OK", From: "2026-10-01"}, mock.Anything).Return(nil)

	out, err := execute(t, NewHistoryCmd(opener(exp, closer)), "export", "--status", "OK", "--from", "2026-10-01")
	require.NoError(t, err)

	assert.Equal(t, "ID,Case\n", out)
	assert.True(t, closer.closed)
	exp.AssertExpectations(t)
}

func TestHistoryExport_XLSX(t *testing.T) {
	exp := new(MockHistoryExporter)
	exp.On("HistoryExcel", mock.Anything, storage.CaseFilter{}).Return([]byte("PK"), nil)

	path := filepath.Join(t.TempDir(), "history.xlsx")
	_, err := execute(t, NewHistoryCmd(opener(exp, &nopCloser{})), "export", "--format", "xlsx", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
}

func TestHistoryExport_Validation(t *testing.T) {
	called := false
	open := func() (HistoryExporter, io.Closer, error) {
		called = true
		return nil, nil, errors.New("should not open")
	}

	for _, args := range [][]string{
		{"export", "--format", "pdf"},
		{"export", "--format", "xlsx"},
		{"export", "--status", "WARN"},
		{"export", "--from", "01/10/2026"},
	} {
		_, err := execute(t, NewHistoryCmd(open), args...)
		assert.Error(t, err, args)
	}
	assert.False(t, called)
}

func TestApplyDataPaths(t *testing.T) {
	std := writeFile(t, "standards.json", `{"NA": {"Aligners": {"CR": 50}}}`)
	units := writeFile(t, "units_eq.json", `{"NA": {"100": 13}}`)
	paths := DataPaths{Standards: std, Units: units}

	root := &cobra.Command{Use: "trackerctl"}
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return ApplyDataPaths(cmd, paths)
	}
	root.AddCommand(
		NewCalcCmd("./missing/standards.json"),
		NewUnitsCmd("./missing/units_eq.json"),
		NewStandardsCmd("./missing/standards.json"),
	)

	out, err := execute(t, root, "calc", "--region", "NA", "--type", "CR", "--start", "08:00", "--end", "08:50")
	require.NoError(t, err)
	assert.Contains(t, out, "Efficiency: 100.0% (OK)")

	out, err = execute(t, root, "units", "--region", "NA", "--production", "100")
	require.NoError(t, err)
	assert.Equal(t, "NA 100.00% = 13.00 units\n", out)

	out, err = execute(t, root, "standards", "validate")
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 regions, 1 standards\n", out)
}

func TestApplyDataPaths_ExplicitFlagWins(t *testing.T) {
	cmd := NewUnitsCmd("./data/units_eq.json")
	require.NoError(t, cmd.ParseFlags([]string{"--units", "/tmp/mine.json"}))

	require.NoError(t, ApplyDataPaths(cmd, DataPaths{Units: "/srv/units_eq.json"}))
	assert.Equal(t, "/tmp/mine.json", cmd.Flags().Lookup("units").Value.String())
}
