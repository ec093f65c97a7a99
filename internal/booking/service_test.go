package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/fixtures"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Test setup helper
func setupTestService(legacySlots bool) *Service {
	log := logger.New("debug")
	metrics := monitoring.NewMetricsCollector("booking-test")
	cfg := &config.SchedulingConfig{LegacyUnboundedSlots: legacySlots}
	directory := fixtures.NewDirectory()

	return NewService(NewRepository(), directory, directory, cfg, log, metrics)
}

func validBooking() *types.BookingRequest {
	return &types.BookingRequest{
		PatientName: "Budi Santoso",
		HospitalID:  "h1",
		DoctorID:    "d1",
		Date:        "2026-09-15",
		TimeSlot:    "09:00",
	}
}

func TestBook_Success(t *testing.T) {
	service := setupTestService(false)

	apt, err := service.Book(validBooking())

	assert.NoError(t, err)
	assert.Regexp(t, `^APP-\d{3}$`, apt.ID)
	assert.Equal(t, types.AppointmentConfirmed, apt.Status)
	assert.Equal(t, "Dr. John Doe", apt.Doctor)
	assert.Equal(t, "Internal Medicine", apt.Department)
	assert.False(t, apt.CreatedAt.IsZero())
}

func TestBook_ValidationErrors(t *testing.T) {
	service := setupTestService(false)

	cases := []struct {
		name   string
		mutate func(*types.BookingRequest)
	}{
		{"missing patient name", func(r *types.BookingRequest) { r.PatientName = "" }},
		{"blank patient name", func(r *types.BookingRequest) { r.PatientName = "   " }},
		{"missing hospital", func(r *types.BookingRequest) { r.HospitalID = "" }},
		{"missing doctor", func(r *types.BookingRequest) { r.DoctorID = "" }},
		{"malformed date", func(r *types.BookingRequest) { r.Date = "15/09/2026" }},
		{"slot outside window", func(r *types.BookingRequest) { r.TimeSlot = "22:00" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBooking()
			tc.mutate(req)

			_, err := service.Book(req)
			assert.Error(t, err)
			assert.True(t, types.IsValidation(err))
		})
	}
}

func TestBook_DoctorNotAtHospital(t *testing.T) {
	service := setupTestService(false)

	req := validBooking()
	req.HospitalID = "h3"
	req.DoctorID = "d2"

	_, err := service.Book(req)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Contains(t, err.Error(), "does not practice")
}

func TestBook_TakenSlotRejected(t *testing.T) {
	service := setupTestService(false)

	_, err := service.Book(validBooking())
	assert.NoError(t, err)

	other := validBooking()
	other.PatientName = "Siti Aminah"

	_, err = service.Book(other)
	assert.Error(t, err)
	assert.True(t, types.IsConflict(err))
}

func TestBook_CancelledSlotReusable(t *testing.T) {
	service := setupTestService(false)

	apt, err := service.Book(validBooking())
	assert.NoError(t, err)

	_, err = service.Cancel(apt.ID)
	assert.NoError(t, err)

	rebooked, err := service.Book(validBooking())
	assert.NoError(t, err)
	assert.NotEqual(t, apt.ID, rebooked.ID)
}

func TestBook_LegacyUnboundedSlots(t *testing.T) {
	service := setupTestService(true)

	_, err := service.Book(validBooking())
	assert.NoError(t, err)

	// legacy mode offers and accepts the same slot again
	_, err = service.Book(validBooking())
	assert.NoError(t, err)

	slots, err := service.AvailableSlots("h1", "d1", "2026-09-15")
	assert.NoError(t, err)
	assert.Equal(t, SlotCatalog(), slots)
}

func TestAvailableSlots_SubtractsBookings(t *testing.T) {
	service := setupTestService(false)

	full, err := service.AvailableSlots("h1", "d1", "2026-09-15")
	assert.NoError(t, err)
	assert.Equal(t, SlotCatalog(), full)

	_, err = service.Book(validBooking())
	assert.NoError(t, err)

	after, err := service.AvailableSlots("h1", "d1", "2026-09-15")
	assert.NoError(t, err)
	assert.Len(t, after, len(full)-1)
	assert.NotContains(t, after, "09:00")

	// another day and another doctor are unaffected
	otherDay, err := service.AvailableSlots("h1", "d1", "2026-09-16")
	assert.NoError(t, err)
	assert.Contains(t, otherDay, "09:00")

	otherDoctor, err := service.AvailableSlots("h1", "d2", "2026-09-15")
	assert.NoError(t, err)
	assert.Contains(t, otherDoctor, "09:00")
}

func TestAvailableSlots_UnknownHospital(t *testing.T) {
	service := setupTestService(false)

	_, err := service.AvailableSlots("h99", "d1", "2026-09-15")
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestCancel(t *testing.T) {
	service := setupTestService(false)

	apt, err := service.Book(validBooking())
	assert.NoError(t, err)

	cancelled, err := service.Cancel(apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.AppointmentCancelled, cancelled.Status)

	_, err = service.Cancel(apt.ID)
	assert.Error(t, err)
	assert.True(t, types.IsConflict(err))

	_, err = service.Cancel("APP-999")
	assert.Error(t, err)
	assert.True(t, types.IsNotFound(err))
}

func TestMarkArrived(t *testing.T) {
	service := setupTestService(false)

	apt, err := service.Book(validBooking())
	assert.NoError(t, err)

	arrived, err := service.MarkArrived(apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.AppointmentArrived, arrived.Status)

	// arrived is terminal: no second arrival, no cancellation
	_, err = service.MarkArrived(apt.ID)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))

	_, err = service.Cancel(apt.ID)
	assert.Error(t, err)

	other, err := service.Book(&types.BookingRequest{
		PatientName: "Andi Wijaya",
		HospitalID:  "h1",
		DoctorID:    "d1",
		Date:        "2026-09-15",
		TimeSlot:    "10:00",
	})
	assert.NoError(t, err)
	_, err = service.Cancel(other.ID)
	assert.NoError(t, err)
	_, err = service.MarkArrived(other.ID)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	service := setupTestService(false)

	first, err := service.Book(validBooking())
	assert.NoError(t, err)

	second := validBooking()
	second.TimeSlot = "10:00"
	_, err = service.Book(second)
	assert.NoError(t, err)

	all := service.List()
	assert.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
}
