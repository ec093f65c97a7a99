package interfaces

import (
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// PatientRepository defines patient directory storage operations
type PatientRepository interface {
	Create(p *types.Patient) error
	GetByID(id string) (*types.Patient, error)
	GetByNIK(nik string) (*types.Patient, error)
	MRNExists(mrn string) bool
	List() []*types.Patient
}

// EncounterRepository defines encounter store operations.
// List-style methods return snapshot slices: repeated calls without an
// intervening mutation return equal results.
type EncounterRepository interface {
	Create(e *types.Encounter) error
	GetByID(id string) (*types.Encounter, error)
	Replace(e *types.Encounter) error
	Exists(id string) bool
	List() []*types.Encounter
	ByHospital(hospitalID string) []*types.Encounter
	ByStatus(status types.EncounterStatus) []*types.Encounter
	NotFinished() []*types.Encounter
}

// ClaimRepository defines claims ledger storage operations
type ClaimRepository interface {
	Create(c *types.Claim) error
	GetByID(id string) (*types.Claim, error)
	Replace(c *types.Claim) error
	Exists(id string) bool
	List() []*types.Claim
}

// AppointmentRepository defines scheduling ledger storage operations
type AppointmentRepository interface {
	Create(a *types.Appointment) error
	GetByID(id string) (*types.Appointment, error)
	Replace(a *types.Appointment) error
	List() []*types.Appointment
	ByDoctorDate(hospitalID, doctor, date string) []*types.Appointment
}
