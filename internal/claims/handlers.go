package claims

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// RegisterRoutes configures HTTP routes for the claims ledger
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/claims", s.submitClaimHandler).Methods("POST")
	router.HandleFunc("/claims", s.listClaimsHandler).Methods("GET")
	router.HandleFunc("/claims/eligible-encounters", s.eligibleEncountersHandler).Methods("GET")
	router.HandleFunc("/claims/{id}", s.getClaimHandler).Methods("GET")
	router.HandleFunc("/claims/{id}/status", s.updateClaimStatusHandler).Methods("POST")
}

// submitClaimHandler raises a new claim
func (s *Service) submitClaimHandler(w http.ResponseWriter, r *http.Request) {
	var sub types.ClaimSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	claim, err := s.Submit(&sub)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to submit claim", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, claim)
}

// listClaimsHandler lists all claims
func (s *Service) listClaimsHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, s.List())
}

// eligibleEncountersHandler lists encounters a claim can be raised against
func (s *Service) eligibleEncountersHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, s.EligibleEncounters())
}

// getClaimHandler handles claim retrieval by id
func (s *Service) getClaimHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	claim, err := s.Get(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Claim not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, claim)
}

// updateClaimStatusHandler applies a manual claim status move
func (s *Service) updateClaimStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var body struct {
		Status types.ClaimStatus `json:"status"`
		Notes  string            `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	claim, err := s.UpdateStatus(vars["id"], body.Status, body.Notes)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to update claim status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, claim)
}

// statusForError maps domain error types to HTTP status codes
func statusForError(err error) int {
	switch {
	case types.IsValidation(err):
		return http.StatusBadRequest
	case types.IsNotFound(err):
		return http.StatusNotFound
	case types.IsConflict(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
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
