package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-tracker/internal/storage"
)

func boolPtr(v bool) *bool { return &v }

func TestCalculate_OnStandard(t *testing.T) {
	res, err := Calculate(50, 50)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Efficiency)
	assert.Equal(t, storage.StatusOK, res.Status)
}

func TestCalculate_Low(t *testing.T) {
	res, err := Calculate(30, 60)
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.Efficiency)
	assert.Equal(t, storage.StatusLow, res.Status)
}

func TestCalculate_InvalidElapsed(t *testing.T) {
	_, err := Calculate(30, 0)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = Calculate(30, -5)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCalculate_InvalidStandard(t *testing.T) {
	_, err := Calculate(0, 30)
	assert.ErrorIs(t, err, ErrInvalidStandard)
}

func TestCaseValue(t *testing.T) {
	assert.InDelta(t, 6.980, CaseValue(28.5), 0.0005)
	std := 28.5
	assert.InDelta(t, std/DailyBaseMinutes*100, CaseValue(std), 1e-12)

	res, err := Calculate(28.5, 30)
	require.NoError(t, err)
	assert.Equal(t, CaseValue(28.5), res.CaseValue)
}

func TestDisplayBand(t *testing.T) {
	assert.Equal(t, BandOK, DisplayBand(100))
	assert.Equal(t, BandWarn, DisplayBand(97.5))
	assert.Equal(t, BandWarn, DisplayBand(95))
	assert.Equal(t, BandLow, DisplayBand(94.9))
}

func TestElapsedMinutes(t *testing.T) {
	m, err := ElapsedMinutes("08:00", "08:50")
	require.NoError(t, err)
	assert.Equal(t, 50.0, m)

	m, err = ElapsedMinutes("23:30", "00:15")
	require.NoError(t, err)
	assert.Equal(t, 45.0, m)

	m, err = ElapsedMinutes("09:00", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)
}

func TestElapsedMinutes_BadClock(t *testing.T) {
	_, err := ElapsedMinutes("8am", "09:00")
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, err = ElapsedMinutes("08:00", "25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestDailyTotal(t *testing.T) {
	cases := []storage.Case{
		{CaseValue: 6.98},
		{CaseValue: 5.0, CountsTowardProduction: boolPtr(true)},
		{CaseValue: 4.0, CountsTowardProduction: boolPtr(false)},
	}
	downtimes := []storage.Downtime{
		{DurationMinutes: 30},
		{DurationMinutes: 10},
	}

	want := 6.98 + 5.0 + 40/408.3*100
	assert.InDelta(t, want, DailyTotal(cases, downtimes), 1e-9)
	assert.InDelta(t, 11.98, CaseValueSum(cases), 1e-9)
	assert.Equal(t, 40.0, DowntimeMinutes(downtimes))
}

func TestDailyTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, DailyTotal(nil, nil))
}
