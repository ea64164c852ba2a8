package service

const (
	CacheKeyPrefix = "kpi:growth:"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100 // máximo de resultados por consulta
)
