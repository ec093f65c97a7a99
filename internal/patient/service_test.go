package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Test setup helper
func setupTestService() *Service {
	log := logger.New("debug")
	metrics := monitoring.NewMetricsCollector("patient-test")
	return NewService(NewRepository(log), log, metrics)
}

func validRegistration() *types.PatientRegistration {
	return &types.PatientRegistration{
		Name:    "Budi Santoso",
		DOB:     "1985-04-12",
		Gender:  types.GenderMale,
		Address: "Jl. Merdeka 10, Malang",
		Phone:   "081234567890",
		NIK:     "3573011204850001",
		BPJS:    "0001234567890",
	}
}

func TestRegister_Success(t *testing.T) {
	service := setupTestService()

	p, err := service.Register(validRegistration())

	assert.NoError(t, err)
	assert.NotNil(t, p)
	assert.NotEmpty(t, p.ID)
	assert.Regexp(t, `^MRN-\d{4}$`, p.MRN)
	assert.Equal(t, "Budi Santoso", p.Name)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestRegister_ValidationErrors(t *testing.T) {
	service := setupTestService()

	cases := []struct {
		name   string
		mutate func(*types.PatientRegistration)
	}{
		{"missing name", func(r *types.PatientRegistration) { r.Name = "" }},
		{"missing NIK", func(r *types.PatientRegistration) { r.NIK = "" }},
		{"missing DOB", func(r *types.PatientRegistration) { r.DOB = "" }},
		{"malformed DOB", func(r *types.PatientRegistration) { r.DOB = "12-04-1985" }},
		{"unknown gender", func(r *types.PatientRegistration) { r.Gender = "X" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := validRegistration()
			tc.mutate(reg)

			_, err := service.Register(reg)
			assert.Error(t, err)
			assert.True(t, types.IsValidation(err))
		})
	}
}

func TestRegister_NilRegistration(t *testing.T) {
	service := setupTestService()

	_, err := service.Register(nil)
	assert.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestRegister_DuplicateNIK(t *testing.T) {
	service := setupTestService()

	first, err := service.Register(validRegistration())
	assert.NoError(t, err)

	again := validRegistration()
	again.Name = "Budi S."

	_, err = service.Register(again)
	assert.Error(t, err)
	assert.True(t, types.IsConflict(err))

	var de *types.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, first.MRN, de.Details["mrn"])
}

func TestRegister_DistinctIdentifiers(t *testing.T) {
	service := setupTestService()

	seenIDs := make(map[string]bool)
	seenMRNs := make(map[string]bool)

	for i := 0; i < 50; i++ {
		reg := validRegistration()
		reg.NIK = reg.NIK[:12] + string(rune('0'+i/10)) + string(rune('0'+i%10)) + "00"

		p, err := service.Register(reg)
		assert.NoError(t, err)
		assert.False(t, seenIDs[p.ID], "id %s issued twice", p.ID)
		assert.False(t, seenMRNs[p.MRN], "MRN %s issued twice", p.MRN)
		seenIDs[p.ID] = true
		seenMRNs[p.MRN] = true
	}
}

func TestGet_NotFound(t *testing.T) {
	service := setupTestService()

	_, err := service.Get("no-such-patient")
	assert.Error(t, err)
	assert.True(t, types.IsNotFound(err))
}

func TestSearch(t *testing.T) {
	service := setupTestService()

	budi, err := service.Register(validRegistration())
	assert.NoError(t, err)

	siti := validRegistration()
	siti.Name = "Siti Rahayu"
	siti.NIK = "3573012208900002"
	registered, err := service.Register(siti)
	assert.NoError(t, err)

	byName := service.Search("siti")
	assert.Len(t, byName, 1)
	assert.Equal(t, registered.ID, byName[0].ID)

	byNIK := service.Search("1204850001")
	assert.Len(t, byNIK, 1)
	assert.Equal(t, budi.ID, byNIK[0].ID)

	byMRN := service.Search(budi.MRN)
	assert.NotEmpty(t, byMRN)
	assert.Equal(t, budi.ID, byMRN[0].ID)

	assert.Len(t, service.Search(""), 2)
	assert.Empty(t, service.Search("nobody"))
}
