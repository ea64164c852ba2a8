// Command kpigrowth builds the native KPI growth library for managed hosts.
//
// Build with:
//
//	go build -buildmode=c-shared -o libkpigrowth.so ./cgo/kpigrowth
//
// The resulting library exports:
//
//	double calculate_kpi_growth(double current, double previous);
//
// Values cross the boundary as raw IEEE-754 doubles, so NaN, infinities
// and negative zero reach the host unchanged. Builds with CGO_ENABLED=0
// produce an empty command with no exported symbols.
package main
