package types

// Hospital represents one facility in the hospital network.
// Hospitals are static reference data in this deployment.
type Hospital struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

// InsuranceProvider represents an insurer that claims are bridged to
type InsuranceProvider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Doctor represents a practitioner available for booking
type Doctor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialty   string   `json:"specialty"`
	HospitalIDs []string `json:"hospital_ids"`
}
