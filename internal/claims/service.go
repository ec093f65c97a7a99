package claims

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Service owns the claims ledger: submission, manual status moves and
// the simulated insurer bridge.
type Service struct {
	repository interfaces.ClaimRepository
	encounters interfaces.EncounterRepository
	insurers   interfaces.InsurerDirectory
	bridge     *Bridge
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector
	seq        atomic.Uint64
}

// NewService creates a new claims service
func NewService(
	repository interfaces.ClaimRepository,
	encounters interfaces.EncounterRepository,
	insurers interfaces.InsurerDirectory,
	bridge *Bridge,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		repository: repository,
		encounters: encounters,
		insurers:   insurers,
		bridge:     bridge,
		logger:     log,
		metrics:    metrics,
	}
}

// EligibleEncounters returns the encounters a claim can be raised
// against: those that have reached the billing stage or finished.
func (s *Service) EligibleEncounters() []*types.Encounter {
	out := make([]*types.Encounter, 0)
	for _, e := range s.encounters.List() {
		if e.Status == types.EncounterBilling || e.Status == types.EncounterFinished {
			out = append(out, e)
		}
	}
	return out
}

// Submit raises a new claim against an encounter and arms the insurer
// bridge acknowledgement. The claim amount is copied from the
// encounter's total charge at this moment and never re-synced.
func (s *Service) Submit(sub *types.ClaimSubmission) (*types.Claim, error) {
	if sub == nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "request body is required", nil)
	}
	if strings.TrimSpace(sub.EncounterID) == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "encounter id is required", nil)
	}
	if strings.TrimSpace(sub.ProviderID) == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "insurance provider id is required", nil)
	}

	enc, err := s.encounters.GetByID(sub.EncounterID)
	if err != nil {
		// an unresolvable encounter is bad submission input, not a
		// missing claim resource
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("encounter %s does not resolve", sub.EncounterID), nil)
	}
	if enc.Status != types.EncounterBilling && enc.Status != types.EncounterFinished {
		return nil, types.NewValidationError(types.ErrCodeEncounterNotBillable,
			fmt.Sprintf("encounter %s is still at the %s stage", enc.ID, enc.Status), nil)
	}
	if _, err := s.insurers.GetProvider(sub.ProviderID); err != nil {
		return nil, types.NewValidationError(types.ErrCodeUnknownProvider,
			fmt.Sprintf("insurance provider %s is not known", sub.ProviderID), nil)
	}

	claim := &types.Claim{
		ID:          s.nextClaimID(),
		EncounterID: enc.ID,
		ProviderID:  sub.ProviderID,
		Status:      types.ClaimSubmitted,
		Amount:      enc.TotalCharge,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.repository.Create(claim); err != nil {
		return nil, err
	}

	s.bridge.Schedule(claim.ID)
	s.metrics.RecordClaimSubmitted(claim.ProviderID)
	s.logger.Infof("Claim %s submitted for encounter %s, amount %.2f", claim.ID, claim.EncounterID, claim.Amount)

	return claim, nil
}

// UpdateStatus applies a manual status move on a claim. Moves that walk
// against the normal progression are applied but flagged as suspicious.
func (s *Service) UpdateStatus(id string, status types.ClaimStatus, notes string) (*types.Claim, error) {
	if !types.ValidClaimStatus(status) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown claim status %q", status), nil)
	}

	claim, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}

	from := claim.Status
	claim.Status = status
	if notes != "" {
		claim.Notes = notes
	}

	if err := s.repository.Replace(claim); err != nil {
		return nil, err
	}

	// A claim pulled out of Submitted by hand no longer needs the
	// insurer acknowledgement
	if from == types.ClaimSubmitted && status != types.ClaimSubmitted {
		s.bridge.Cancel(id)
	}

	if types.ClaimStatusRegression(from, status) {
		s.logger.Suspicious("claim", id, string(from), string(status), true)
		s.metrics.RecordSuspicious("claim")
	}

	return claim, nil
}

// Get returns one claim by id
func (s *Service) Get(id string) (*types.Claim, error) {
	return s.repository.GetByID(id)
}

// List returns all claims in submission order
func (s *Service) List() []*types.Claim {
	return s.repository.List()
}

func (s *Service) nextClaimID() string {
	for {
		id := fmt.Sprintf("CLM-%03d", s.seq.Add(1))
		if !s.repository.Exists(id) {
			return id
		}
	}
}
