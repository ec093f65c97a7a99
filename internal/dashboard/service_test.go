package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aguspuryanto/medi-hospital-erp/internal/booking"
	"github.com/aguspuryanto/medi-hospital-erp/internal/claims"
	"github.com/aguspuryanto/medi-hospital-erp/internal/encounter"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/fixtures"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// stubInsight returns a fixed text without calling out
type stubInsight struct {
	text   string
	called bool
	seen   int
}

func (s *stubInsight) SOAPAssist(ctx context.Context, note *types.SOAPNote) string {
	return s.text
}

func (s *stubInsight) DashboardInsights(ctx context.Context, encounters []*types.Encounter) string {
	s.called = true
	s.seen = len(encounters)
	return s.text
}

// Test setup helper
func setupTestService() (*Service, *encounter.Repository, *claims.Repository, *booking.Repository, *stubInsight) {
	log := logger.New("debug")
	encounters := encounter.NewRepository()
	claimsRepo := claims.NewRepository()
	appointments := booking.NewRepository()
	insight := &stubInsight{text: "ER load trending up."}

	service := NewService(encounters, claimsRepo, appointments, fixtures.NewDirectory(), insight, log)
	return service, encounters, claimsRepo, appointments, insight
}

func seedEncounter(t *testing.T, repo *encounter.Repository, id, hospitalID string, encType types.EncounterType, status types.EncounterStatus, billing types.BillingStatus, charge float64) {
	t.Helper()
	assert.NoError(t, repo.Create(&types.Encounter{
		ID:            id,
		PatientID:     "p1",
		HospitalID:    hospitalID,
		Type:          encType,
		Status:        status,
		CreatedAt:     time.Now(),
		BillingStatus: billing,
		TotalCharge:   charge,
	}))
}

func TestNetworkSummary(t *testing.T) {
	service, encounters, claimsRepo, appointments, _ := setupTestService()

	seedEncounter(t, encounters, "e1", "h1", types.EncounterOutpatient, types.EncounterFinished, types.BillingPaid, 350000)
	seedEncounter(t, encounters, "e2", "h1", types.EncounterER, types.EncounterPharmacy, types.BillingUnpaid, 0)
	seedEncounter(t, encounters, "e3", "h2", types.EncounterOutpatient, types.EncounterWaiting, types.BillingUnpaid, 0)

	assert.NoError(t, claimsRepo.Create(&types.Claim{ID: "CLM-001", EncounterID: "e1", ProviderID: "ins1", Status: types.ClaimSubmitted, Amount: 350000}))
	assert.NoError(t, appointments.Create(&types.Appointment{ID: "APP-001", HospitalID: "h1", Status: types.AppointmentConfirmed}))
	assert.NoError(t, appointments.Create(&types.Appointment{ID: "APP-002", HospitalID: "h2", Status: types.AppointmentCancelled}))

	summary := service.NetworkSummary()

	assert.Equal(t, 3, summary.TotalEncounters)
	assert.Equal(t, 2, summary.ActiveEncounters)
	assert.Equal(t, 2, summary.CountsByType["Outpatient"])
	assert.Equal(t, 1, summary.CountsByType["ER"])
	assert.Equal(t, 1, summary.CountsByStatus["pharmacy"])
	assert.Equal(t, 1, summary.PharmacyQueue)
	assert.Equal(t, 350000.0, summary.RevenueCollected)
	assert.Equal(t, 1, summary.Claims.Total)
	assert.Equal(t, 350000.0, summary.Claims.AmountSubmitted)
	assert.Equal(t, 1, summary.TotalAppointments)
}

func TestNetworkSummary_Empty(t *testing.T) {
	service, _, _, _, _ := setupTestService()

	summary := service.NetworkSummary()

	assert.Equal(t, 0, summary.TotalEncounters)
	assert.Equal(t, 0.0, summary.RevenueCollected)
	assert.Empty(t, summary.CountsByStatus)
	assert.Equal(t, 0, summary.Claims.Total)
}

func TestHospitalSummary_FiltersToOneHospital(t *testing.T) {
	service, encounters, claimsRepo, appointments, _ := setupTestService()

	seedEncounter(t, encounters, "e1", "h1", types.EncounterOutpatient, types.EncounterBilling, types.BillingPaid, 100000)
	seedEncounter(t, encounters, "e2", "h2", types.EncounterOutpatient, types.EncounterBilling, types.BillingPaid, 999999)

	assert.NoError(t, claimsRepo.Create(&types.Claim{ID: "CLM-001", EncounterID: "e1", Status: types.ClaimProcessing, Amount: 100000}))
	assert.NoError(t, claimsRepo.Create(&types.Claim{ID: "CLM-002", EncounterID: "e2", Status: types.ClaimProcessing, Amount: 999999}))
	assert.NoError(t, appointments.Create(&types.Appointment{ID: "APP-001", HospitalID: "h2", Status: types.AppointmentConfirmed}))

	summary, err := service.HospitalSummary("h1")
	assert.NoError(t, err)

	assert.Equal(t, "h1", summary.HospitalID)
	assert.Equal(t, 1, summary.TotalEncounters)
	assert.Equal(t, 100000.0, summary.RevenueCollected)
	assert.Equal(t, 1, summary.Claims.Total)
	assert.Equal(t, 100000.0, summary.Claims.AmountSubmitted)
	assert.Equal(t, 0, summary.TotalAppointments)
}

func TestHospitalSummary_UnknownHospital(t *testing.T) {
	service, _, _, _, _ := setupTestService()

	_, err := service.HospitalSummary("h99")
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestSummaryIsReadOnlyProjection(t *testing.T) {
	service, encounters, _, _, _ := setupTestService()

	seedEncounter(t, encounters, "e1", "h1", types.EncounterOutpatient, types.EncounterWaiting, types.BillingUnpaid, 0)

	first := service.NetworkSummary()
	second := service.NetworkSummary()
	assert.Equal(t, first, second)

	// the underlying record is untouched
	enc, err := encounters.GetByID("e1")
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterWaiting, enc.Status)
}

func TestInsights_PassesActiveEncounters(t *testing.T) {
	service, encounters, _, _, insight := setupTestService()

	seedEncounter(t, encounters, "e1", "h1", types.EncounterOutpatient, types.EncounterWaiting, types.BillingUnpaid, 0)
	seedEncounter(t, encounters, "e2", "h1", types.EncounterOutpatient, types.EncounterFinished, types.BillingPaid, 100)

	got := service.Insights(context.Background())

	assert.Equal(t, "ER load trending up.", got)
	assert.True(t, insight.called)
	assert.Equal(t, 1, insight.seen)
}
