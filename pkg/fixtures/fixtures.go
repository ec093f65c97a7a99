// Package fixtures provides the static reference data for the hospital
// network (hospitals, insurers, doctors) and the demo seed records used
// when the application starts with an empty state.
package fixtures

import (
	"time"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Hospitals returns the facilities in the network
func Hospitals() []*types.Hospital {
	return []*types.Hospital{
		{ID: "h1", Name: "RS Medika Malang", Code: "MLG", Location: "Malang"},
		{ID: "h2", Name: "RS Medika Sukorejo", Code: "SKR", Location: "Pasuruan"},
		{ID: "h3", Name: "RS Medika Probolinggo", Code: "PRO", Location: "Probolinggo"},
	}
}

// InsuranceProviders returns the insurers that claims can be bridged to
func InsuranceProviders() []*types.InsuranceProvider {
	return []*types.InsuranceProvider{
		{ID: "ins1", Name: "BPJS Kesehatan", Code: "BPJS"},
		{ID: "ins2", Name: "Mandiri Inhealth", Code: "MI"},
		{ID: "ins3", Name: "Prudential", Code: "PRU"},
	}
}

// Doctors returns the practitioners available for booking
func Doctors() []*types.Doctor {
	return []*types.Doctor{
		{ID: "d1", Name: "Dr. John Doe", Specialty: "Internal Medicine", HospitalIDs: []string{"h1", "h2"}},
		{ID: "d2", Name: "Dr. Smith", Specialty: "Emergency", HospitalIDs: []string{"h1"}},
		{ID: "d3", Name: "Dr. Jane", Specialty: "Pediatrics", HospitalIDs: []string{"h2", "h3"}},
		{ID: "d4", Name: "Dr. Rina Wati", Specialty: "Cardiology", HospitalIDs: []string{"h1", "h3"}},
	}
}

// DemoPatients returns the seed patient records
func DemoPatients() []*types.Patient {
	now := time.Now()
	return []*types.Patient{
		{ID: "p1", MRN: "MRN-001", Name: "Budi Santoso", DOB: "1985-05-12", Gender: types.GenderMale, Address: "Jl. Ijen No. 10", Phone: "08123456789", NIK: "3573011205850001", CreatedAt: now},
		{ID: "p2", MRN: "MRN-002", Name: "Siti Aminah", DOB: "1992-08-21", Gender: types.GenderFemale, Address: "Jl. Dieng No. 5", Phone: "08198765432", NIK: "3573012108920002", CreatedAt: now},
		{ID: "p3", MRN: "MRN-003", Name: "Andi Wijaya", DOB: "1970-12-01", Gender: types.GenderMale, Address: "Jl. Borobudur No. 2", Phone: "08155443322", NIK: "3573010112700003", CreatedAt: now},
	}
}

// DemoEncounters returns the seed encounter records
func DemoEncounters() []*types.Encounter {
	now := time.Now()
	return []*types.Encounter{
		{
			ID:            "e1",
			PatientID:     "p1",
			HospitalID:    "h1",
			Type:          types.EncounterOutpatient,
			Department:    "Internal Medicine",
			Doctor:        "Dr. John Doe",
			Status:        types.EncounterFinished,
			CreatedAt:     now,
			BillingStatus: types.BillingPaid,
			TotalCharge:   350000,
			SOAP: &types.SOAPNote{
				Subjective: "Demam 3 hari",
				Objective:  "T: 38.5C, N: 88x/m",
				Assessment: "Suspect Typhoid",
				Plan:       "Widal test, Bedrest",
			},
		},
		{
			ID:            "e2",
			PatientID:     "p2",
			HospitalID:    "h1",
			Type:          types.EncounterER,
			Department:    "Emergency",
			Doctor:        "Dr. Smith",
			Status:        types.EncounterDoctor,
			CreatedAt:     now,
			BillingStatus: types.BillingUnpaid,
		},
		{
			ID:            "e3",
			PatientID:     "p3",
			HospitalID:    "h2",
			Type:          types.EncounterOutpatient,
			Department:    "Pediatrics",
			Doctor:        "Dr. Jane",
			Status:        types.EncounterWaiting,
			CreatedAt:     now,
			BillingStatus: types.BillingUnpaid,
		},
	}
}
