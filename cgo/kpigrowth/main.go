package main

import "enterprise-core/growth"

// c-shared libraries still need a main package entry point.
func main() {}

func kpiGrowth(current, previous float64) float64 {
	return growth.CalculateKpiGrowth(current, previous)
}
