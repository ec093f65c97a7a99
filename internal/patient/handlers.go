package patient

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// RegisterRoutes configures HTTP routes for the patient directory
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/patients", s.registerPatientHandler).Methods("POST")
	router.HandleFunc("/patients", s.searchPatientsHandler).Methods("GET")
	router.HandleFunc("/patients/{id}", s.getPatientHandler).Methods("GET")
}

// registerPatientHandler handles new patient registration
func (s *Service) registerPatientHandler(w http.ResponseWriter, r *http.Request) {
	var reg types.PatientRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := s.Register(&reg)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to register patient", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, p)
}

// searchPatientsHandler handles directory search
func (s *Service) searchPatientsHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	s.writeJSONResponse(w, http.StatusOK, s.Search(term))
}

// getPatientHandler handles patient retrieval by id
func (s *Service) getPatientHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	p, err := s.Get(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Patient not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, p)
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
