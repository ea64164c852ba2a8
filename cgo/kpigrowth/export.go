//go:build cgo

package main

import "C"

//export calculate_kpi_growth
func calculate_kpi_growth(current, previous C.double) C.double {
	return C.double(kpiGrowth(float64(current), float64(previous)))
}

// nativeKpiGrowth goes through the exported symbol and the C.double
// conversions exactly as a C caller would.
func nativeKpiGrowth(current, previous float64) float64 {
	return float64(calculate_kpi_growth(C.double(current), C.double(previous)))
}
