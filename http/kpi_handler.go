package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"enterprise-core/domain"
	"enterprise-core/growth"
	"enterprise-core/service"
)

type KpiHandler struct {
	service *service.KpiService
	logger  *zap.Logger
}

func NewKpiHandler(service *service.KpiService, logger *zap.Logger) *KpiHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KpiHandler{service: service, logger: logger}
}

// CalculateGrowth accepts the input pair either as a JSON body (POST) or as
// current/previous query parameters (GET).
func (h *KpiHandler) CalculateGrowth(w http.ResponseWriter, r *http.Request) {
	var input domain.KpiInput

	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	case http.MethodGet:
		var err error
		if input, err = parseQueryInput(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := h.service.CalculateGrowth(r.Context(), input)
	h.writeJSON(w, result)
}

func parseQueryInput(r *http.Request) (domain.KpiInput, error) {
	q := r.URL.Query()
	current, err := parseFloatParam(q.Get("current"), "current")
	if err != nil {
		return domain.KpiInput{}, err
	}
	previous, err := parseFloatParam(q.Get("previous"), "previous")
	if err != nil {
		return domain.KpiInput{}, err
	}
	return domain.KpiInput{Current: domain.Float(current), Previous: domain.Float(previous)}, nil
}

func parseFloatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, &paramError{name: name, reason: "required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{name: name, reason: "invalid number"}
	}
	return v, nil
}

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return "parameter " + e.name + ": " + e.reason
}

func (h *KpiHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "parameter limit: invalid number", http.StatusBadRequest)
			return
		}
		limit = n
	}

	h.writeJSON(w, h.service.History(r.Context(), limit))
}

// Sample is a smoke test for the growth calculation: 100 over 50.
func (h *KpiHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, map[string]domain.Float{
		"result": domain.Float(growth.CalculateKpiGrowth(100, 50)),
	})
}

func (h *KpiHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}
