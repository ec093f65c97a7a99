package patient

import (
	"sync"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Repository is the in-memory patient directory store. All collections
// live for the application session; one mutation applies atomically.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]types.Patient
	idByNIK map[string]string
	idByMRN map[string]string
	order   []string
	logger  *logger.Logger
}

// NewRepository creates a new in-memory patient repository
func NewRepository(log *logger.Logger) *Repository {
	return &Repository{
		byID:    make(map[string]types.Patient),
		idByNIK: make(map[string]string),
		idByMRN: make(map[string]string),
		logger:  log,
	}
}

// Create stores a new patient record
func (r *Repository) Create(p *types.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return types.NewConflictError(types.ErrCodeConflict, "patient id already exists: "+p.ID, nil)
	}

	r.byID[p.ID] = *p
	if p.NIK != "" {
		r.idByNIK[p.NIK] = p.ID
	}
	r.idByMRN[p.MRN] = p.ID
	r.order = append(r.order, p.ID)

	r.logger.Infof("Stored patient %s (%s)", p.ID, p.MRN)
	return nil
}

// GetByID retrieves a patient by id
func (r *Repository) GetByID(id string) (*types.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeUnknownPatient, "patient not found: "+id)
	}
	out := p
	return &out, nil
}

// GetByNIK retrieves a patient by national id number
func (r *Repository) GetByNIK(nik string) (*types.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByNIK[nik]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeUnknownPatient, "no patient with NIK "+nik)
	}
	p := r.byID[id]
	out := p
	return &out, nil
}

// MRNExists reports whether an MRN is already assigned
func (r *Repository) MRNExists(mrn string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.idByMRN[mrn]
	return ok
}

// List returns a snapshot of all patients in registration order
func (r *Repository) List() []*types.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Patient, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		out = append(out, &p)
	}
	return out
}

var _ interfaces.PatientRepository = (*Repository)(nil)
