package types

import "time"

// AppointmentStatus represents appointment status values
type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
	AppointmentArrived   AppointmentStatus = "Arrived"
)

// Appointment represents a booked visit slot. The patient name is free
// text and deliberately not a reference into the patient directory: the
// booking ledger is decoupled from the encounter store.
type Appointment struct {
	ID          string            `json:"id"`
	PatientName string            `json:"patient_name"`
	HospitalID  string            `json:"hospital_id"`
	Department  string            `json:"department"`
	Doctor      string            `json:"doctor"`
	Date        string            `json:"date"` // YYYY-MM-DD
	TimeSlot    string            `json:"time_slot"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// BookingRequest carries the fields needed to book an appointment
type BookingRequest struct {
	PatientName string `json:"patient_name"`
	HospitalID  string `json:"hospital_id"`
	DoctorID    string `json:"doctor_id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
}
