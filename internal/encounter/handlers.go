package encounter

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// RegisterRoutes configures HTTP routes for the encounter workflow
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/encounters", s.createEncounterHandler).Methods("POST")
	router.HandleFunc("/encounters", s.listEncountersHandler).Methods("GET")
	router.HandleFunc("/encounters/{id}", s.getEncounterHandler).Methods("GET")
	router.HandleFunc("/encounters/{id}", s.updateEncounterHandler).Methods("PUT")
	router.HandleFunc("/encounters/{id}/status", s.transitionHandler).Methods("POST")
	router.HandleFunc("/encounters/{id}/clinical", s.clinicalHandler).Methods("POST")
	router.HandleFunc("/encounters/{id}/billing", s.billingHandler).Methods("POST")
}

// createEncounterHandler opens a new encounter
func (s *Service) createEncounterHandler(w http.ResponseWriter, r *http.Request) {
	var req types.EncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enc, err := s.Create(&req)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to create encounter", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, enc)
}

// listEncountersHandler lists encounters, optionally filtered by
// hospital or workflow status
func (s *Service) listEncountersHandler(w http.ResponseWriter, r *http.Request) {
	if hospitalID := r.URL.Query().Get("hospital"); hospitalID != "" {
		s.writeJSONResponse(w, http.StatusOK, s.ByHospital(hospitalID))
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		encounters, err := s.ByStatus(types.EncounterStatus(status))
		if err != nil {
			s.writeErrorResponse(w, statusForError(err), "Failed to list encounters", err)
			return
		}
		s.writeJSONResponse(w, http.StatusOK, encounters)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, s.All())
}

// getEncounterHandler handles encounter retrieval by id
func (s *Service) getEncounterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	enc, err := s.Get(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Encounter not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, enc)
}

// updateEncounterHandler replaces an encounter record
func (s *Service) updateEncounterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var enc types.Encounter
	if err := json.NewDecoder(r.Body).Decode(&enc); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	enc.ID = vars["id"]

	updated, err := s.Update(&enc)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to update encounter", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, updated)
}

// transitionHandler moves an encounter to a later workflow stage
func (s *Service) transitionHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var body struct {
		Status types.EncounterStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enc, err := s.Transition(vars["id"], body.Status)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to transition encounter", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, enc)
}

// clinicalHandler attaches a clinical note and advances to pharmacy
func (s *Service) clinicalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var note types.SOAPNote
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enc, err := s.AdvanceToPharmacy(vars["id"], &note)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to save clinical note", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, enc)
}

// billingHandler records the payment outcome for an encounter
func (s *Service) billingHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var body struct {
		BillingStatus types.BillingStatus `json:"billing_status"`
		TotalCharge   float64             `json:"total_charge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enc, err := s.SetBillingOutcome(vars["id"], body.BillingStatus, body.TotalCharge)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to record billing outcome", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, enc)
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
