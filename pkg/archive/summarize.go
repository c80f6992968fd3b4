package archive

import (
	"math"
	"sort"

	"github.com/Ramsey-B/aster/pkg/models"
)

// maxSeriesPoints caps the points returned in an API response.
const maxSeriesPoints = 1000

// summarize drops NaN samples, computes flux statistics, and normalizes the
// series around its median.
func summarize(mission models.Mission, targetID int64, times, flux []float64) *models.Lightcurve {
	t := make([]float64, 0, len(times))
	f := make([]float64, 0, len(flux))
	for i := range times {
		if math.IsNaN(times[i]) || math.IsNaN(flux[i]) {
			continue
		}
		t = append(t, times[i])
		f = append(f, flux[i])
	}

	lc := &models.Lightcurve{
		Mission:    mission,
		TargetID:   targetID,
		DataPoints: len(t),
	}
	if len(t) == 0 {
		return lc
	}

	minT, maxT := t[0], t[0]
	for _, v := range t {
		minT = math.Min(minT, v)
		maxT = math.Max(maxT, v)
	}
	lc.TimeRange = models.TimeRange{Start: minT, End: maxT, Duration: maxT - minT}

	var sum float64
	minF, maxF := f[0], f[0]
	for _, v := range f {
		sum += v
		minF = math.Min(minF, v)
		maxF = math.Max(maxF, v)
	}
	mean := sum / float64(len(f))

	var sq float64
	for _, v := range f {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / float64(len(f)))

	sorted := append([]float64(nil), f...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	lc.FluxStats = models.FluxStats{Mean: mean, Median: median, Std: std, Min: minF, Max: maxF}

	n := len(t)
	if n > maxSeriesPoints {
		n = maxSeriesPoints
	}
	normalized := make([]float64, n)
	for i := 0; i < n; i++ {
		if median != 0 {
			normalized[i] = (f[i] - median) / median
		}
	}
	lc.TimeSeries = models.TimeSeries{
		Time:           t[:n],
		Flux:           f[:n],
		FluxNormalized: normalized,
	}
	return lc
}
