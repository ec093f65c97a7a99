package booking

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// RegisterRoutes configures HTTP routes for the scheduling ledger
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", s.bookHandler).Methods("POST")
	router.HandleFunc("/appointments", s.listAppointmentsHandler).Methods("GET")
	router.HandleFunc("/appointments/slots", s.availableSlotsHandler).Methods("GET")
	router.HandleFunc("/appointments/{id}", s.getAppointmentHandler).Methods("GET")
	router.HandleFunc("/appointments/{id}/cancel", s.cancelHandler).Methods("POST")
	router.HandleFunc("/appointments/{id}/arrive", s.arriveHandler).Methods("POST")
}

// bookHandler records a new appointment
func (s *Service) bookHandler(w http.ResponseWriter, r *http.Request) {
	var req types.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	apt, err := s.Book(&req)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to book appointment", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, apt)
}

// listAppointmentsHandler lists all appointments
func (s *Service) listAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, s.List())
}

// availableSlotsHandler returns the open slots for a doctor on a day
func (s *Service) availableSlotsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	slots, err := s.AvailableSlots(q.Get("hospital"), q.Get("doctor"), q.Get("date"))
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to list slots", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

// getAppointmentHandler handles appointment retrieval by id
func (s *Service) getAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apt, err := s.Get(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Appointment not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, apt)
}

// cancelHandler cancels an appointment
func (s *Service) cancelHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apt, err := s.Cancel(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to cancel appointment", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, apt)
}

// arriveHandler marks an appointment as arrived
func (s *Service) arriveHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	apt, err := s.MarkArrived(vars["id"])
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to mark arrival", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, apt)
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
