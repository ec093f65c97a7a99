package interfaces

import (
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// HospitalDirectory resolves static hospital reference data
type HospitalDirectory interface {
	GetHospital(id string) (*types.Hospital, error)
	ListHospitals() []*types.Hospital
}

// InsurerDirectory resolves static insurance provider reference data
type InsurerDirectory interface {
	GetProvider(id string) (*types.InsuranceProvider, error)
	ListProviders() []*types.InsuranceProvider
}

// DoctorDirectory resolves static practitioner reference data
type DoctorDirectory interface {
	GetDoctor(id string) (*types.Doctor, error)
	DoctorsAt(hospitalID string) []*types.Doctor
}
