package booking

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Service owns the scheduling ledger: slot availability, booking,
// cancellation and arrival. The ledger is deliberately decoupled from
// the patient directory and the encounter store.
type Service struct {
	repository interfaces.AppointmentRepository
	hospitals  interfaces.HospitalDirectory
	doctors    interfaces.DoctorDirectory
	config     *config.SchedulingConfig
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector
	seq        atomic.Uint64
}

// NewService creates a new booking service
func NewService(
	repository interfaces.AppointmentRepository,
	hospitals interfaces.HospitalDirectory,
	doctors interfaces.DoctorDirectory,
	cfg *config.SchedulingConfig,
	log *logger.Logger,
	metrics *monitoring.MetricsCollector,
) *Service {
	return &Service{
		repository: repository,
		hospitals:  hospitals,
		doctors:    doctors,
		config:     cfg,
		logger:     log,
		metrics:    metrics,
	}
}

// AvailableSlots returns the bookable slots for a doctor on a day:
// the fixed catalog minus slots already taken by a booking that is not
// cancelled. With the legacy_unbounded_slots flag set the full catalog
// is offered regardless of existing bookings.
func (s *Service) AvailableSlots(hospitalID, doctorID, date string) ([]string, error) {
	doctor, err := s.resolveDoctor(hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	if s.config.LegacyUnboundedSlots {
		return SlotCatalog(), nil
	}

	taken := make(map[string]bool)
	for _, a := range s.repository.ByDoctorDate(hospitalID, doctor.Name, date) {
		if a.Status != types.AppointmentCancelled {
			taken[a.TimeSlot] = true
		}
	}

	out := make([]string, 0, len(slotCatalog))
	for _, slot := range slotCatalog {
		if !taken[slot] {
			out = append(out, slot)
		}
	}
	return out, nil
}

// Book records a new confirmed appointment
func (s *Service) Book(req *types.BookingRequest) (*types.Appointment, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	doctor, err := s.resolveDoctor(req.HospitalID, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if !s.config.LegacyUnboundedSlots {
		for _, a := range s.repository.ByDoctorDate(req.HospitalID, doctor.Name, req.Date) {
			if a.Status != types.AppointmentCancelled && a.TimeSlot == req.TimeSlot {
				return nil, types.NewConflictError(types.ErrCodeSlotUnavailable,
					fmt.Sprintf("slot %s on %s is already booked", req.TimeSlot, req.Date),
					map[string]interface{}{"doctor": doctor.Name})
			}
		}
	}

	apt := &types.Appointment{
		ID:          s.nextAppointmentID(),
		PatientName: req.PatientName,
		HospitalID:  req.HospitalID,
		Department:  doctor.Specialty,
		Doctor:      doctor.Name,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Status:      types.AppointmentConfirmed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repository.Create(apt); err != nil {
		return nil, err
	}

	s.metrics.RecordAppointmentBooked(apt.HospitalID)
	s.logger.WithHospital(apt.HospitalID).Infof("Appointment %s booked with %s at %s %s", apt.ID, apt.Doctor, apt.Date, apt.TimeSlot)

	return apt, nil
}

// Cancel marks an appointment as cancelled, freeing its slot
func (s *Service) Cancel(id string) (*types.Appointment, error) {
	apt, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if apt.Status == types.AppointmentCancelled {
		return nil, types.NewConflictError(types.ErrCodeConflict,
			fmt.Sprintf("appointment %s is already cancelled", id), nil)
	}
	if apt.Status == types.AppointmentArrived {
		return nil, types.NewValidationError(types.ErrCodeInvalidTransition,
			fmt.Sprintf("appointment %s has already arrived", id), nil)
	}

	apt.Status = types.AppointmentCancelled
	if err := s.repository.Replace(apt); err != nil {
		return nil, err
	}

	s.logger.Infof("Appointment %s cancelled", id)
	return apt, nil
}

// MarkArrived records that the patient showed up for a confirmed
// appointment
func (s *Service) MarkArrived(id string) (*types.Appointment, error) {
	apt, err := s.repository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if apt.Status != types.AppointmentConfirmed {
		return nil, types.NewValidationError(types.ErrCodeInvalidTransition,
			fmt.Sprintf("appointment %s is %s, only confirmed appointments can arrive", id, apt.Status), nil)
	}

	apt.Status = types.AppointmentArrived
	if err := s.repository.Replace(apt); err != nil {
		return nil, err
	}

	s.logger.Infof("Appointment %s marked arrived", id)
	return apt, nil
}

// Get returns one appointment by id
func (s *Service) Get(id string) (*types.Appointment, error) {
	return s.repository.GetByID(id)
}

// List returns all appointments in booking order
func (s *Service) List() []*types.Appointment {
	return s.repository.List()
}

func (s *Service) validateRequest(req *types.BookingRequest) error {
	if req == nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "request body is required", nil)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "patient name is required", nil)
	}
	if strings.TrimSpace(req.HospitalID) == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "hospital id is required", nil)
	}
	if strings.TrimSpace(req.DoctorID) == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "doctor id is required", nil)
	}
	if err := validateDate(req.Date); err != nil {
		return err
	}
	if !knownSlot(req.TimeSlot) {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("time slot %q is outside the consultation window", req.TimeSlot), nil)
	}
	return nil
}

func (s *Service) resolveDoctor(hospitalID, doctorID string) (*types.Doctor, error) {
	if _, err := s.hospitals.GetHospital(hospitalID); err != nil {
		return nil, types.NewValidationError(types.ErrCodeUnknownHospital,
			fmt.Sprintf("hospital %s is not part of the network", hospitalID), nil)
	}

	doctor, err := s.doctors.GetDoctor(doctorID)
	if err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("doctor %s is not known", doctorID), nil)
	}
	for _, hid := range doctor.HospitalIDs {
		if hid == hospitalID {
			return doctor, nil
		}
	}
	return nil, types.NewValidationError(types.ErrCodeInvalidInput,
		fmt.Sprintf("doctor %s does not practice at hospital %s", doctor.Name, hospitalID), nil)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return types.NewValidationError(types.ErrCodeInvalidInput, "date must be YYYY-MM-DD", nil)
	}
	return nil
}

func (s *Service) nextAppointmentID() string {
	return fmt.Sprintf("APP-%03d", s.seq.Add(1))
}
