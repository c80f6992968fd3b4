package archive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/models"
)

func TestSummarize(t *testing.T) {
	times := []float64{1000.0, 1000.5, 1001.0, 1001.5}
	flux := []float64{10.0, 12.0, 8.0, 10.0}

	lc := summarize(models.MissionTESS, 141527965, times, flux)

	assert.Equal(t, models.MissionTESS, lc.Mission)
	assert.Equal(t, int64(141527965), lc.TargetID)
	assert.Equal(t, 4, lc.DataPoints)

	assert.Equal(t, 1000.0, lc.TimeRange.Start)
	assert.Equal(t, 1001.5, lc.TimeRange.End)
	assert.Equal(t, 1.5, lc.TimeRange.Duration)

	assert.Equal(t, 10.0, lc.FluxStats.Mean)
	assert.Equal(t, 10.0, lc.FluxStats.Median)
	assert.Equal(t, 8.0, lc.FluxStats.Min)
	assert.Equal(t, 12.0, lc.FluxStats.Max)
	assert.InDelta(t, math.Sqrt(2), lc.FluxStats.Std, 1e-9)

	require.Len(t, lc.TimeSeries.FluxNormalized, 4)
	assert.InDelta(t, 0.2, lc.TimeSeries.FluxNormalized[1], 1e-9)
	assert.InDelta(t, -0.2, lc.TimeSeries.FluxNormalized[2], 1e-9)
}

func TestSummarize_DropsNaNSamples(t *testing.T) {
	times := []float64{1.0, math.NaN(), 3.0, 4.0}
	flux := []float64{5.0, 6.0, math.NaN(), 7.0}

	lc := summarize(models.MissionKepler, 10797460, times, flux)

	assert.Equal(t, 2, lc.DataPoints)
	assert.Equal(t, []float64{1.0, 4.0}, lc.TimeSeries.Time)
	assert.Equal(t, []float64{5.0, 7.0}, lc.TimeSeries.Flux)
}

func TestSummarize_EmptySeries(t *testing.T) {
	lc := summarize(models.MissionK2, 1, []float64{math.NaN()}, []float64{math.NaN()})

	assert.Equal(t, 0, lc.DataPoints)
	assert.Empty(t, lc.TimeSeries.Time)
}

func TestSummarize_CapsSeriesLength(t *testing.T) {
	n := maxSeriesPoints + 500
	times := make([]float64, n)
	flux := make([]float64, n)
	for i := range times {
		times[i] = float64(i)
		flux[i] = 1.0
	}

	lc := summarize(models.MissionTESS, 1, times, flux)

	assert.Equal(t, n, lc.DataPoints)
	assert.Len(t, lc.TimeSeries.Time, maxSeriesPoints)
	assert.Len(t, lc.TimeSeries.Flux, maxSeriesPoints)
	assert.Len(t, lc.TimeSeries.FluxNormalized, maxSeriesPoints)
}
