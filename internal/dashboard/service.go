package dashboard

import (
	"context"
	"fmt"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Summary is the aggregated operational view rendered on the dashboard.
// All figures are pure projections over the current ledgers.
type Summary struct {
	HospitalID        string         `json:"hospital_id,omitempty"`
	TotalEncounters   int            `json:"total_encounters"`
	ActiveEncounters  int            `json:"active_encounters"`
	CountsByType      map[string]int `json:"counts_by_type"`
	CountsByStatus    map[string]int `json:"counts_by_status"`
	PharmacyQueue     int            `json:"pharmacy_queue"`
	RevenueCollected  float64        `json:"revenue_collected"`
	Claims            ClaimTotals    `json:"claims"`
	TotalAppointments int            `json:"total_appointments"`
}

// ClaimTotals summarizes the claims ledger
type ClaimTotals struct {
	Total           int            `json:"total"`
	CountsByStatus  map[string]int `json:"counts_by_status"`
	AmountSubmitted float64        `json:"amount_submitted"`
}

// Service produces the aggregated dashboard projections. It owns no
// state of its own and never mutates the ledgers it reads.
type Service struct {
	encounters   interfaces.EncounterRepository
	claims       interfaces.ClaimRepository
	appointments interfaces.AppointmentRepository
	hospitals    interfaces.HospitalDirectory
	insight      interfaces.InsightClient
	logger       *logger.Logger
}

// NewService creates a new dashboard service
func NewService(
	encounters interfaces.EncounterRepository,
	claims interfaces.ClaimRepository,
	appointments interfaces.AppointmentRepository,
	hospitals interfaces.HospitalDirectory,
	insight interfaces.InsightClient,
	log *logger.Logger,
) *Service {
	return &Service{
		encounters:   encounters,
		claims:       claims,
		appointments: appointments,
		hospitals:    hospitals,
		insight:      insight,
		logger:       log,
	}
}

// NetworkSummary aggregates across every hospital in the network
func (s *Service) NetworkSummary() *Summary {
	return s.summarize("", s.encounters.List())
}

// HospitalSummary aggregates one hospital's view
func (s *Service) HospitalSummary(hospitalID string) (*Summary, error) {
	if _, err := s.hospitals.GetHospital(hospitalID); err != nil {
		return nil, types.NewValidationError(types.ErrCodeUnknownHospital,
			fmt.Sprintf("hospital %s is not part of the network", hospitalID), nil)
	}
	return s.summarize(hospitalID, s.encounters.ByHospital(hospitalID)), nil
}

// Insights returns the advisory reading of the current network load.
// It always returns text; summarizer failures degrade to a fallback.
func (s *Service) Insights(ctx context.Context) string {
	return s.insight.DashboardInsights(ctx, s.encounters.NotFinished())
}

func (s *Service) summarize(hospitalID string, encounters []*types.Encounter) *Summary {
	summary := &Summary{
		HospitalID:     hospitalID,
		CountsByType:   make(map[string]int),
		CountsByStatus: make(map[string]int),
		Claims: ClaimTotals{
			CountsByStatus: make(map[string]int),
		},
	}

	encounterIDs := make(map[string]bool)
	for _, e := range encounters {
		encounterIDs[e.ID] = true
		summary.TotalEncounters++
		summary.CountsByType[string(e.Type)]++
		summary.CountsByStatus[string(e.Status)]++

		if e.Status != types.EncounterFinished {
			summary.ActiveEncounters++
		}
		if e.Status == types.EncounterPharmacy {
			summary.PharmacyQueue++
		}
		if e.BillingStatus == types.BillingPaid {
			summary.RevenueCollected += e.TotalCharge
		}
	}

	// the network view covers all claims, a hospital view only those
	// raised against its own encounters
	for _, c := range s.claims.List() {
		if hospitalID != "" && !encounterIDs[c.EncounterID] {
			continue
		}
		summary.Claims.Total++
		summary.Claims.CountsByStatus[string(c.Status)]++
		summary.Claims.AmountSubmitted += c.Amount
	}

	for _, a := range s.appointments.List() {
		if hospitalID != "" && a.HospitalID != hospitalID {
			continue
		}
		if a.Status != types.AppointmentCancelled {
			summary.TotalAppointments++
		}
	}

	return summary
}
