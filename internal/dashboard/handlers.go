package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// RegisterRoutes configures HTTP routes for the dashboard projections
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard/summary", s.networkSummaryHandler).Methods("GET")
	router.HandleFunc("/dashboard/summary/{hospitalId}", s.hospitalSummaryHandler).Methods("GET")
	router.HandleFunc("/dashboard/insights", s.insightsHandler).Methods("GET")
}

// networkSummaryHandler returns the network-wide aggregation
func (s *Service) networkSummaryHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, s.NetworkSummary())
}

// hospitalSummaryHandler returns one hospital's aggregation
func (s *Service) hospitalSummaryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := s.HospitalSummary(vars["hospitalId"])
	if err != nil {
		status := http.StatusInternalServerError
		if types.IsValidation(err) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, status, "Failed to build summary", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, summary)
}

// insightsHandler returns the advisory reading of the current load
func (s *Service) insightsHandler(w http.ResponseWriter, r *http.Request) {
	text := s.Insights(r.Context())
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"insights": text})
}

// writeJSONResponse writes a JSON response
func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	s.logger.Errorf("%s: %v", message, err)

	response := map[string]interface{}{
		"error":  message,
		"status": statusCode,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	s.writeJSONResponse(w, statusCode, response)
}
