package patient

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Service owns the patient directory: registration and lookup.
// Patient records are immutable once registered.
type Service struct {
	repository interfaces.PatientRepository
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector
}

// NewService creates a new patient directory service
func NewService(repo interfaces.PatientRepository, log *logger.Logger, metrics *monitoring.MetricsCollector) *Service {
	return &Service{
		repository: repo,
		logger:     log,
		metrics:    metrics,
	}
}

// Register validates and stores a new patient, assigning a fresh id
// and a unique MRN
func (s *Service) Register(reg *types.PatientRegistration) (*types.Patient, error) {
	if err := s.validateRegistration(reg); err != nil {
		return nil, err
	}

	// Duplicate NIK means the person is already registered
	if existing, err := s.repository.GetByNIK(reg.NIK); err == nil {
		return nil, types.NewConflictError(types.ErrCodeConflict,
			"patient already registered with this NIK",
			map[string]interface{}{"mrn": existing.MRN})
	}

	p := &types.Patient{
		ID:        uuid.New().String(),
		MRN:       s.generateMRN(),
		Name:      reg.Name,
		DOB:       reg.DOB,
		Gender:    reg.Gender,
		Address:   reg.Address,
		Phone:     reg.Phone,
		NIK:       reg.NIK,
		BPJS:      reg.BPJS,
		Email:     reg.Email,
		CreatedAt: time.Now(),
	}

	if err := s.repository.Create(p); err != nil {
		return nil, err
	}

	s.metrics.RecordPatientRegistered()
	s.logger.Infof("Registered patient %s with MRN %s", p.ID, p.MRN)
	return p, nil
}

// Get retrieves a patient by id
func (s *Service) Get(id string) (*types.Patient, error) {
	return s.repository.GetByID(id)
}

// List returns all registered patients
func (s *Service) List() []*types.Patient {
	return s.repository.List()
}

// Search filters patients by case-insensitive name substring, or by
// MRN / NIK substring
func (s *Service) Search(term string) []*types.Patient {
	if term == "" {
		return s.repository.List()
	}

	lowered := strings.ToLower(term)
	var out []*types.Patient
	for _, p := range s.repository.List() {
		if strings.Contains(strings.ToLower(p.Name), lowered) ||
			strings.Contains(p.MRN, term) ||
			strings.Contains(p.NIK, term) {
			out = append(out, p)
		}
	}
	return out
}

// validateRegistration validates registration input
func (s *Service) validateRegistration(reg *types.PatientRegistration) error {
	if reg == nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "request body is required", nil)
	}
	if reg.Name == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "patient name is required", nil)
	}
	if reg.NIK == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "NIK is required", nil)
	}
	if reg.DOB == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "date of birth is required", nil)
	}
	if _, err := time.Parse("2006-01-02", reg.DOB); err != nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "date of birth must be YYYY-MM-DD", nil)
	}
	if reg.Gender != types.GenderMale && reg.Gender != types.GenderFemale {
		return types.NewValidationError(types.ErrCodeInvalidInput, "gender must be M or F", nil)
	}
	return nil
}

// generateMRN produces a display identifier, regenerating on collision
func (s *Service) generateMRN() string {
	for {
		mrn := fmt.Sprintf("MRN-%04d", rand.Intn(9000)+1000)
		if !s.repository.MRNExists(mrn) {
			return mrn
		}
	}
}
