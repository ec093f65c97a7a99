package claims

import (
	"fmt"
	"sync"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Repository is an in-memory claims ledger. Claims are held by value
// and every read returns a copy.
type Repository struct {
	mu    sync.RWMutex
	byID  map[string]types.Claim
	order []string
}

var _ interfaces.ClaimRepository = (*Repository)(nil)

// NewRepository creates an empty claims ledger
func NewRepository() *Repository {
	return &Repository{
		byID: make(map[string]types.Claim),
	}
}

// Create stores a new claim
func (r *Repository) Create(c *types.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return types.NewConflictError(types.ErrCodeConflict,
			fmt.Sprintf("claim %s already exists", c.ID), nil)
	}
	r.byID[c.ID] = *c
	r.order = append(r.order, c.ID)
	return nil
}

// GetByID returns the claim with the given id
func (r *Repository) GetByID(id string) (*types.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("claim %s not found", id))
	}
	return &c, nil
}

// Replace overwrites an existing claim record
func (r *Repository) Replace(c *types.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("claim %s not found", c.ID))
	}
	r.byID[c.ID] = *c
	return nil
}

// Exists reports whether a claim with the given id is stored
func (r *Repository) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok
}

// List returns all claims in submission order
func (r *Repository) List() []*types.Claim {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Claim, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		out = append(out, &c)
	}
	return out
}
