package types

import "time"

// EncounterStatus represents a stage in the encounter workflow.
// The stages form a fixed forward-only order:
// waiting -> triaged -> doctor -> pharmacy -> billing -> finished.
type EncounterStatus string

const (
	EncounterWaiting  EncounterStatus = "waiting"
	EncounterTriaged  EncounterStatus = "triaged"
	EncounterDoctor   EncounterStatus = "doctor"
	EncounterPharmacy EncounterStatus = "pharmacy"
	EncounterBilling  EncounterStatus = "billing"
	EncounterFinished EncounterStatus = "finished"
)

// EncounterStatuses lists all workflow stages in order
var EncounterStatuses = []EncounterStatus{
	EncounterWaiting,
	EncounterTriaged,
	EncounterDoctor,
	EncounterPharmacy,
	EncounterBilling,
	EncounterFinished,
}

// EncounterType represents the kind of visit
type EncounterType string

const (
	EncounterOutpatient EncounterType = "Outpatient"
	EncounterER         EncounterType = "ER"
	EncounterInpatient  EncounterType = "Inpatient"
)

// BillingStatus represents the payment state of an encounter,
// an independent axis from the workflow status
type BillingStatus string

const (
	BillingUnpaid  BillingStatus = "unpaid"
	BillingPaid    BillingStatus = "paid"
	BillingPending BillingStatus = "pending"
)

// SOAPNote is a structured clinical note with four free-text sections
type SOAPNote struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Encounter represents one patient visit tracked through the
// administrative and clinical workflow
type Encounter struct {
	ID            string          `json:"id"`
	PatientID     string          `json:"patient_id"`
	HospitalID    string          `json:"hospital_id"`
	Type          EncounterType   `json:"type"`
	Department    string          `json:"department"`
	Doctor        string          `json:"doctor"`
	Status        EncounterStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	SOAP          *SOAPNote       `json:"soap,omitempty"`
	BillingStatus BillingStatus   `json:"billing_status"`
	TotalCharge   float64         `json:"total_charge,omitempty"`
}

// EncounterRequest carries the fields needed to open a new encounter
type EncounterRequest struct {
	PatientID  string        `json:"patient_id"`
	HospitalID string        `json:"hospital_id"`
	Type       EncounterType `json:"type"`
	Department string        `json:"department"`
	Doctor     string        `json:"doctor"`
}

// ValidEncounterType reports whether t is one of the known visit types
func ValidEncounterType(t EncounterType) bool {
	switch t {
	case EncounterOutpatient, EncounterER, EncounterInpatient:
		return true
	}
	return false
}

// ValidEncounterStatus reports whether s is one of the workflow stages
func ValidEncounterStatus(s EncounterStatus) bool {
	for _, known := range EncounterStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidBillingStatus reports whether b is a known billing state
func ValidBillingStatus(b BillingStatus) bool {
	switch b {
	case BillingUnpaid, BillingPaid, BillingPending:
		return true
	}
	return false
}
