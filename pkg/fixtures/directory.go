package fixtures

import (
	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Directory serves the static reference data behind the lookup
// interfaces. The data never changes after construction, so reads
// need no locking.
type Directory struct {
	hospitals map[string]*types.Hospital
	insurers  map[string]*types.InsuranceProvider
	doctors   map[string]*types.Doctor

	hospitalOrder []*types.Hospital
	insurerOrder  []*types.InsuranceProvider
	doctorOrder   []*types.Doctor
}

// NewDirectory builds a directory over the fixture reference data
func NewDirectory() *Directory {
	d := &Directory{
		hospitals: make(map[string]*types.Hospital),
		insurers:  make(map[string]*types.InsuranceProvider),
		doctors:   make(map[string]*types.Doctor),
	}

	for _, h := range Hospitals() {
		d.hospitals[h.ID] = h
		d.hospitalOrder = append(d.hospitalOrder, h)
	}
	for _, p := range InsuranceProviders() {
		d.insurers[p.ID] = p
		d.insurerOrder = append(d.insurerOrder, p)
	}
	for _, doc := range Doctors() {
		d.doctors[doc.ID] = doc
		d.doctorOrder = append(d.doctorOrder, doc)
	}

	return d
}

// GetHospital resolves a hospital by id
func (d *Directory) GetHospital(id string) (*types.Hospital, error) {
	h, ok := d.hospitals[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeUnknownHospital, "hospital not found: "+id)
	}
	return h, nil
}

// ListHospitals returns all hospitals in the network
func (d *Directory) ListHospitals() []*types.Hospital {
	out := make([]*types.Hospital, len(d.hospitalOrder))
	copy(out, d.hospitalOrder)
	return out
}

// GetProvider resolves an insurance provider by id
func (d *Directory) GetProvider(id string) (*types.InsuranceProvider, error) {
	p, ok := d.insurers[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeUnknownProvider, "insurance provider not found: "+id)
	}
	return p, nil
}

// ListProviders returns all insurance providers
func (d *Directory) ListProviders() []*types.InsuranceProvider {
	out := make([]*types.InsuranceProvider, len(d.insurerOrder))
	copy(out, d.insurerOrder)
	return out
}

// GetDoctor resolves a doctor by id
func (d *Directory) GetDoctor(id string) (*types.Doctor, error) {
	doc, ok := d.doctors[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "doctor not found: "+id)
	}
	return doc, nil
}

// DoctorsAt returns the doctors practicing at a hospital
func (d *Directory) DoctorsAt(hospitalID string) []*types.Doctor {
	var out []*types.Doctor
	for _, doc := range d.doctorOrder {
		for _, hid := range doc.HospitalIDs {
			if hid == hospitalID {
				out = append(out, doc)
				break
			}
		}
	}
	return out
}

var (
	_ interfaces.HospitalDirectory = (*Directory)(nil)
	_ interfaces.InsurerDirectory  = (*Directory)(nil)
	_ interfaces.DoctorDirectory   = (*Directory)(nil)
)
