package encounter

import (
	"fmt"
	"sync"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Repository is an in-memory encounter store. Encounters are held by
// value and every read returns a copy, so callers can never mutate
// stored state without going through Replace.
type Repository struct {
	mu    sync.RWMutex
	byID  map[string]types.Encounter
	order []string
}

var _ interfaces.EncounterRepository = (*Repository)(nil)

// NewRepository creates an empty encounter store
func NewRepository() *Repository {
	return &Repository{
		byID: make(map[string]types.Encounter),
	}
}

// Create stores a new encounter
func (r *Repository) Create(e *types.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; exists {
		return types.NewConflictError(types.ErrCodeConflict,
			fmt.Sprintf("encounter %s already exists", e.ID), nil)
	}
	r.byID[e.ID] = cloneEncounter(e)
	r.order = append(r.order, e.ID)
	return nil
}

// GetByID returns the encounter with the given id
func (r *Repository) GetByID(id string) (*types.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("encounter %s not found", id))
	}
	out := cloneEncounter(&e)
	return &out, nil
}

// Replace overwrites an existing encounter record
func (r *Repository) Replace(e *types.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("encounter %s not found", e.ID))
	}
	r.byID[e.ID] = cloneEncounter(e)
	return nil
}

// Exists reports whether an encounter with the given id is stored
func (r *Repository) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok
}

// List returns all encounters in creation order
func (r *Repository) List() []*types.Encounter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(types.Encounter) bool { return true })
}

// ByHospital returns all encounters belonging to one hospital
func (r *Repository) ByHospital(hospitalID string) []*types.Encounter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e types.Encounter) bool {
		return e.HospitalID == hospitalID
	})
}

// ByStatus returns all encounters currently at the given workflow stage
func (r *Repository) ByStatus(status types.EncounterStatus) []*types.Encounter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e types.Encounter) bool {
		return e.Status == status
	})
}

// NotFinished returns all encounters still moving through the workflow
func (r *Repository) NotFinished() []*types.Encounter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e types.Encounter) bool {
		return e.Status != types.EncounterFinished
	})
}

// collect must be called with at least a read lock held
func (r *Repository) collect(keep func(types.Encounter) bool) []*types.Encounter {
	out := make([]*types.Encounter, 0)
	for _, id := range r.order {
		e := r.byID[id]
		if keep(e) {
			c := cloneEncounter(&e)
			out = append(out, &c)
		}
	}
	return out
}

func cloneEncounter(e *types.Encounter) types.Encounter {
	out := *e
	if e.SOAP != nil {
		soap := *e.SOAP
		out.SOAP = &soap
	}
	return out
}
