// Package growth computes KPI growth rates.
package growth

// CalculateKpiGrowth returns the percentage change of current relative to
// previous. A previous value of zero (either sign) has no baseline and
// yields 0 instead of dividing. NaN and infinite inputs are not checked and
// propagate through the arithmetic.
func CalculateKpiGrowth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}
