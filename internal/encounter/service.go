package encounter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Service implements the encounter lifecycle workflow
type Service struct {
	repository interfaces.EncounterRepository
	patients   interfaces.PatientRepository
	hospitals  interfaces.HospitalDirectory
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector
}

// NewService creates a new encounter service
func NewService(
	repository interfaces.EncounterRepository,
	patients interfaces.PatientRepository,
	hospitals interfaces.HospitalDirectory,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		repository: repository,
		patients:   patients,
		hospitals:  hospitals,
		logger:     log,
		metrics:    metrics,
	}
}

// Create opens a new encounter in the waiting stage
func (s *Service) Create(req *types.EncounterRequest) (*types.Encounter, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.patients.GetByID(req.PatientID); err != nil {
		return nil, types.NewValidationError(types.ErrCodeUnknownPatient,
			fmt.Sprintf("patient %s is not registered", req.PatientID), nil)
	}
	if _, err := s.hospitals.GetHospital(req.HospitalID); err != nil {
		return nil, types.NewValidationError(types.ErrCodeUnknownHospital,
			fmt.Sprintf("hospital %s is not part of the network", req.HospitalID), nil)
	}

	enc := &types.Encounter{
		ID:            s.nextEncounterID(),
		PatientID:     req.PatientID,
		HospitalID:    req.HospitalID,
		Type:          req.Type,
		Department:    req.Department,
		Doctor:        req.Doctor,
		Status:        types.EncounterWaiting,
		CreatedAt:     time.Now().UTC(),
		BillingStatus: types.BillingUnpaid,
	}

	if err := s.repository.Create(enc); err != nil {
		s.logger.Errorf("Failed to store encounter: %v", err)
		return nil, err
	}

	s.metrics.RecordEncounterCreated(enc.HospitalID, string(enc.Type))
	s.logger.WithHospital(enc.HospitalID).Infof("Encounter %s opened for patient %s", enc.ID, enc.PatientID)

	return enc, nil
}

// Get returns one encounter by id
func (s *Service) Get(id string) (*types.Encounter, error) {
	return s.repository.GetByID(id)
}

// Update replaces an encounter record. The id, patient, hospital and
// creation time of the stored record are kept; a status change embedded
// in the update must still respect the workflow order.
func (s *Service) Update(e *types.Encounter) (*types.Encounter, error) {
	existing, err := s.repository.GetByID(e.ID)
	if err != nil {
		return nil, err
	}

	if !types.ValidEncounterStatus(e.Status) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown encounter status %q", e.Status), nil)
	}
	if !types.ValidBillingStatus(e.BillingStatus) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown billing status %q", e.BillingStatus), nil)
	}
	if e.TotalCharge < 0 {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			"total charge cannot be negative", nil)
	}

	if e.Status != existing.Status {
		if err := CheckTransition(existing.Status, e.Status); err != nil {
			s.rejectTransition(e.ID, existing.Status, e.Status)
			return nil, err
		}
	}

	updated := *e
	updated.PatientID = existing.PatientID
	updated.HospitalID = existing.HospitalID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repository.Replace(&updated); err != nil {
		return nil, err
	}

	if updated.Status != existing.Status {
		s.applyTransition(updated.ID, existing.Status, updated.Status)
	}

	return &updated, nil
}

// Transition moves an encounter to a later workflow stage
func (s *Service) Transition(id string, to types.EncounterStatus) (*types.Encounter, error) {
	existing, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(existing.Status, to); err != nil {
		s.rejectTransition(id, existing.Status, to)
		return nil, err
	}

	from := existing.Status
	existing.Status = to
	if err := s.repository.Replace(existing); err != nil {
		return nil, err
	}

	s.applyTransition(id, from, to)
	return existing, nil
}

// AdvanceToPharmacy attaches a clinical note and moves the encounter to
// the pharmacy stage. This is the path used when a consultation is
// closed out: it is only allowed while the encounter has not yet
// reached pharmacy.
func (s *Service) AdvanceToPharmacy(id string, soap *types.SOAPNote) (*types.Encounter, error) {
	if soap == nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			"clinical note is required", nil)
	}
	if strings.TrimSpace(soap.Subjective) == "" && strings.TrimSpace(soap.Objective) == "" &&
		strings.TrimSpace(soap.Assessment) == "" && strings.TrimSpace(soap.Plan) == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			"clinical note cannot be empty", nil)
	}

	existing, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(existing.Status, types.EncounterPharmacy); err != nil {
		s.rejectTransition(id, existing.Status, types.EncounterPharmacy)
		return nil, err
	}

	from := existing.Status
	existing.SOAP = soap
	existing.Status = types.EncounterPharmacy
	if err := s.repository.Replace(existing); err != nil {
		return nil, err
	}

	s.applyTransition(id, from, types.EncounterPharmacy)
	return existing, nil
}

// SetBillingOutcome records the payment result for an encounter. When
// the encounter sits at the billing stage and the bill is settled, it
// is also moved to finished.
func (s *Service) SetBillingOutcome(id string, billing types.BillingStatus, totalCharge float64) (*types.Encounter, error) {
	if !types.ValidBillingStatus(billing) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown billing status %q", billing), nil)
	}
	if totalCharge < 0 {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			"total charge cannot be negative", nil)
	}

	existing, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.BillingStatus = billing
	existing.TotalCharge = totalCharge

	from := existing.Status
	settle := billing == types.BillingPaid && existing.Status == types.EncounterBilling
	if settle {
		existing.Status = types.EncounterFinished
	}

	if err := s.repository.Replace(existing); err != nil {
		return nil, err
	}

	if settle {
		s.applyTransition(id, from, types.EncounterFinished)
	}
	return existing, nil
}

// All returns every encounter across the network
func (s *Service) All() []*types.Encounter {
	return s.repository.List()
}

// ByHospital returns the encounters of one hospital
func (s *Service) ByHospital(hospitalID string) []*types.Encounter {
	return s.repository.ByHospital(hospitalID)
}

// ByStatus returns the encounters currently at one workflow stage
func (s *Service) ByStatus(status types.EncounterStatus) ([]*types.Encounter, error) {
	if !types.ValidEncounterStatus(status) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown encounter status %q", status), nil)
	}
	return s.repository.ByStatus(status), nil
}

// NotFinished returns the encounters still moving through the workflow
func (s *Service) NotFinished() []*types.Encounter {
	return s.repository.NotFinished()
}

func (s *Service) validateRequest(req *types.EncounterRequest) error {
	if req == nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "request body is required", nil)
	}
	if strings.TrimSpace(req.PatientID) == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "patient id is required", nil)
	}
	if strings.TrimSpace(req.HospitalID) == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "hospital id is required", nil)
	}
	if !types.ValidEncounterType(req.Type) {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown encounter type %q", req.Type), nil)
	}
	return nil
}

// nextEncounterID produces a fresh id, regenerating on collision
func (s *Service) nextEncounterID() string {
	for {
		id := uuid.New().String()
		if !s.repository.Exists(id) {
			return id
		}
	}
}

func (s *Service) applyTransition(id string, from, to types.EncounterStatus) {
	s.logger.Transition(id, string(from), string(to))
	s.metrics.RecordTransition(string(from), string(to))
}

func (s *Service) rejectTransition(id string, from, to types.EncounterStatus) {
	s.metrics.RecordTransitionRejected(string(from), string(to))
	if IsBackward(from, to) {
		s.logger.Suspicious("encounter", id, string(from), string(to), false)
		s.metrics.RecordSuspicious("encounter")
	}
}
