package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aguspuryanto/medi-hospital-erp/internal/patient"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/fixtures"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Test setup helper
func setupTestService(t *testing.T) (*Service, *types.Patient) {
	log := logger.New("debug")
	metrics := monitoring.NewMetricsCollector("encounter-test")

	patients := patient.NewRepository(log)
	p := fixtures.DemoPatients()[0]
	assert.NoError(t, patients.Create(p))

	service := NewService(NewRepository(), patients, fixtures.NewDirectory(), log, metrics)
	return service, p
}

func openEncounter(t *testing.T, service *Service, p *types.Patient) *types.Encounter {
	enc, err := service.Create(&types.EncounterRequest{
		PatientID:  p.ID,
		HospitalID: "h1",
		Type:       types.EncounterOutpatient,
		Department: "Poli Umum",
		Doctor:     "dr. Ahmad Fauzi",
	})
	assert.NoError(t, err)
	return enc
}

func TestCreate_Success(t *testing.T) {
	service, p := setupTestService(t)

	enc := openEncounter(t, service, p)

	assert.NotEmpty(t, enc.ID)
	assert.Equal(t, types.EncounterWaiting, enc.Status)
	assert.Equal(t, types.BillingUnpaid, enc.BillingStatus)
	assert.False(t, enc.CreatedAt.IsZero())
	assert.Nil(t, enc.SOAP)
}

func TestCreate_DistinctIDs(t *testing.T) {
	service, p := setupTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		enc := openEncounter(t, service, p)
		assert.False(t, seen[enc.ID], "id %s issued twice", enc.ID)
		seen[enc.ID] = true
	}
}

func TestCreate_UnknownPatient(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Create(&types.EncounterRequest{
		PatientID:  "ghost",
		HospitalID: "h1",
		Type:       types.EncounterOutpatient,
	})
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.Contains(t, err.Error(), "not registered")
}

func TestCreate_UnknownHospital(t *testing.T) {
	service, p := setupTestService(t)

	_, err := service.Create(&types.EncounterRequest{
		PatientID:  p.ID,
		HospitalID: "h99",
		Type:       types.EncounterOutpatient,
	})
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestCreate_UnknownType(t *testing.T) {
	service, p := setupTestService(t)

	_, err := service.Create(&types.EncounterRequest{
		PatientID:  p.ID,
		HospitalID: "h1",
		Type:       "Dental",
	})
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestTransition_ForwardSteps(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	for _, to := range []types.EncounterStatus{
		types.EncounterTriaged,
		types.EncounterDoctor,
		types.EncounterPharmacy,
		types.EncounterBilling,
		types.EncounterFinished,
	} {
		updated, err := service.Transition(enc.ID, to)
		assert.NoError(t, err)
		assert.Equal(t, to, updated.Status)
	}
}

func TestTransition_SkipStages(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	updated, err := service.Transition(enc.ID, types.EncounterBilling)
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterBilling, updated.Status)
}

func TestTransition_BackwardRejected(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterDoctor)
	assert.NoError(t, err)

	_, err = service.Transition(enc.ID, types.EncounterTriaged)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))

	// state must be untouched after the rejection
	current, err := service.Get(enc.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterDoctor, current.Status)
}

func TestTransition_FinishedIsTerminal(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterFinished)
	assert.NoError(t, err)

	for _, to := range types.EncounterStatuses {
		_, err = service.Transition(enc.ID, to)
		assert.Error(t, err, "finished encounter accepted move to %s", to)
	}
}

func TestTransition_SameStatusRejected(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterWaiting)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestTransition_NotFound(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Transition("no-such-encounter", types.EncounterTriaged)
	assert.Error(t, err)
	assert.True(t, types.IsNotFound(err))
}

func TestAdvanceToPharmacy(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	note := &types.SOAPNote{
		Subjective: "Demam 3 hari",
		Objective:  "Suhu 38.5C",
		Assessment: "Viral infection",
		Plan:       "Paracetamol 3x500mg",
	}

	updated, err := service.AdvanceToPharmacy(enc.ID, note)
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterPharmacy, updated.Status)
	assert.NotNil(t, updated.SOAP)
	assert.Equal(t, "Demam 3 hari", updated.SOAP.Subjective)
}

func TestAdvanceToPharmacy_AlreadyPastPharmacy(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterBilling)
	assert.NoError(t, err)

	_, err = service.AdvanceToPharmacy(enc.ID, &types.SOAPNote{Subjective: "late note"})
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestAdvanceToPharmacy_EmptyNote(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.AdvanceToPharmacy(enc.ID, &types.SOAPNote{})
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))

	_, err = service.AdvanceToPharmacy(enc.ID, nil)
	assert.Error(t, err)
}

func TestSetBillingOutcome_SettlesAtBilling(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterBilling)
	assert.NoError(t, err)

	updated, err := service.SetBillingOutcome(enc.ID, types.BillingPaid, 350000)
	assert.NoError(t, err)
	assert.Equal(t, types.BillingPaid, updated.BillingStatus)
	assert.Equal(t, 350000.0, updated.TotalCharge)
	assert.Equal(t, types.EncounterFinished, updated.Status)
}

func TestSetBillingOutcome_PendingKeepsStage(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterBilling)
	assert.NoError(t, err)

	updated, err := service.SetBillingOutcome(enc.ID, types.BillingPending, 120000)
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterBilling, updated.Status)
	assert.Equal(t, types.BillingPending, updated.BillingStatus)
}

func TestSetBillingOutcome_NegativeCharge(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.SetBillingOutcome(enc.ID, types.BillingPaid, -1)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestUpdate_NotFound(t *testing.T) {
	service, _ := setupTestService(t)

	_, err := service.Update(&types.Encounter{
		ID:            "no-such-encounter",
		Status:        types.EncounterWaiting,
		BillingStatus: types.BillingUnpaid,
	})
	assert.Error(t, err)
	assert.True(t, types.IsNotFound(err))
}

func TestUpdate_PreservesIdentityFields(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	modified := *enc
	modified.PatientID = "someone-else"
	modified.HospitalID = "h2"
	modified.Department = "Poli Anak"

	updated, err := service.Update(&modified)
	assert.NoError(t, err)
	assert.Equal(t, enc.PatientID, updated.PatientID)
	assert.Equal(t, enc.HospitalID, updated.HospitalID)
	assert.Equal(t, enc.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Poli Anak", updated.Department)
}

func TestUpdate_BackwardStatusRejected(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	_, err := service.Transition(enc.ID, types.EncounterPharmacy)
	assert.NoError(t, err)

	modified := *enc
	modified.Status = types.EncounterTriaged

	_, err = service.Update(&modified)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestQueries(t *testing.T) {
	service, p := setupTestService(t)

	first := openEncounter(t, service, p)
	second := openEncounter(t, service, p)

	_, err := service.Transition(second.ID, types.EncounterPharmacy)
	assert.NoError(t, err)

	all := service.All()
	assert.Len(t, all, 2)

	byHospital := service.ByHospital("h1")
	assert.Len(t, byHospital, 2)
	assert.Empty(t, service.ByHospital("h2"))

	waiting, err := service.ByStatus(types.EncounterWaiting)
	assert.NoError(t, err)
	assert.Len(t, waiting, 1)
	assert.Equal(t, first.ID, waiting[0].ID)

	_, err = service.ByStatus("paused")
	assert.Error(t, err)

	assert.Len(t, service.NotFinished(), 2)
	_, err = service.Transition(first.ID, types.EncounterFinished)
	assert.NoError(t, err)
	assert.Len(t, service.NotFinished(), 1)
}

func TestRepositorySnapshots(t *testing.T) {
	service, p := setupTestService(t)
	enc := openEncounter(t, service, p)

	first, err := service.Get(enc.ID)
	assert.NoError(t, err)

	// mutating a returned record must not leak into the store
	first.Status = types.EncounterFinished
	first.Department = "changed"

	second, err := service.Get(enc.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.EncounterWaiting, second.Status)
	assert.Equal(t, "Poli Umum", second.Department)
}
