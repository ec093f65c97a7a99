package types

import "time"

// Gender represents patient gender values
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Patient represents patient demographic information.
// Records are immutable once registered; there is no edit operation.
type Patient struct {
	ID        string    `json:"id"`
	MRN       string    `json:"mrn"` // Medical Record Number, display identifier
	Name      string    `json:"name"`
	DOB       string    `json:"dob"` // YYYY-MM-DD
	Gender    Gender    `json:"gender"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	NIK       string    `json:"nik"` // National ID
	BPJS      string    `json:"bpjs,omitempty"` // insurance membership number
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientRegistration carries the fields needed to register a new patient
type PatientRegistration struct {
	Name    string `json:"name"`
	DOB     string `json:"dob"`
	Gender  Gender `json:"gender"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	NIK     string `json:"nik"`
	BPJS    string `json:"bpjs,omitempty"`
	Email   string `json:"email,omitempty"`
}
