package booking

import (
	"fmt"
	"sync"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Repository is an in-memory appointment ledger. Appointments are held
// by value and every read returns a copy.
type Repository struct {
	mu    sync.RWMutex
	byID  map[string]types.Appointment
	order []string
}

var _ interfaces.AppointmentRepository = (*Repository)(nil)

// NewRepository creates an empty appointment ledger
func NewRepository() *Repository {
	return &Repository{
		byID: make(map[string]types.Appointment),
	}
}

// Create stores a new appointment
func (r *Repository) Create(a *types.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; exists {
		return types.NewConflictError(types.ErrCodeConflict,
			fmt.Sprintf("appointment %s already exists", a.ID), nil)
	}
	r.byID[a.ID] = *a
	r.order = append(r.order, a.ID)
	return nil
}

// GetByID returns the appointment with the given id
func (r *Repository) GetByID(id string) (*types.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("appointment %s not found", id))
	}
	return &a, nil
}

// Replace overwrites an existing appointment record
func (r *Repository) Replace(a *types.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("appointment %s not found", a.ID))
	}
	r.byID[a.ID] = *a
	return nil
}

// List returns all appointments in booking order
func (r *Repository) List() []*types.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Appointment, 0, len(r.order))
	for _, id := range r.order {
		a := r.byID[id]
		out = append(out, &a)
	}
	return out
}

// ByDoctorDate returns the appointments booked with one doctor at one
// hospital on one day
func (r *Repository) ByDoctorDate(hospitalID, doctor, date string) []*types.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Appointment, 0)
	for _, id := range r.order {
		a := r.byID[id]
		if a.HospitalID == hospitalID && a.Doctor == doctor && a.Date == date {
			out = append(out, &a)
		}
	}
	return out
}
