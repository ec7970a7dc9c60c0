package stats

import (
	"math"
	"sort"
)

// Gini returns the Gini coefficient of values: 0 when every staff
// member carries the same hours, approaching 1 as hours concentrate
// on fewer people. Used as ScheduleStats.FairnessIndex.
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	gini := 0.0
	for i, v := range sorted {
		gini += (2*float64(i+1) - float64(n) - 1) * v
	}
	gini /= float64(n) * sum

	return math.Max(0, math.Min(1, gini))
}
