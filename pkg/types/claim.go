package types

import "time"

// ClaimStatus represents the state of an insurance claim
type ClaimStatus string

const (
	ClaimDraft      ClaimStatus = "Draft"
	ClaimSubmitted  ClaimStatus = "Submitted"
	ClaimProcessing ClaimStatus = "Processing"
	ClaimApproved   ClaimStatus = "Approved"
	ClaimRejected   ClaimStatus = "Rejected"
	ClaimIncomplete ClaimStatus = "Incomplete"
)

// Claim represents a reimbursement request tied to exactly one encounter.
// Amount is copied from the encounter's total charge at submission time
// and is not re-synced afterwards.
type Claim struct {
	ID          string      `json:"id"`
	EncounterID string      `json:"encounter_id"`
	ProviderID  string      `json:"provider_id"`
	Status      ClaimStatus `json:"status"`
	Amount      float64     `json:"amount"`
	SubmittedAt time.Time   `json:"submitted_at"`
	Notes       string      `json:"notes,omitempty"`
}

// ClaimSubmission carries the fields needed to bridge a new claim
type ClaimSubmission struct {
	EncounterID string `json:"encounter_id"`
	ProviderID  string `json:"provider_id"`
}

// ValidClaimStatus reports whether s is a known claim status
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimDraft, ClaimSubmitted, ClaimProcessing, ClaimApproved, ClaimRejected, ClaimIncomplete:
		return true
	}
	return false
}

// claimStatusRank orders the normal forward progression of a claim.
// Approved, Rejected and Incomplete are terminal outcomes of Processing.
var claimStatusRank = map[ClaimStatus]int{
	ClaimDraft:      0,
	ClaimSubmitted:  1,
	ClaimProcessing: 2,
	ClaimApproved:   3,
	ClaimRejected:   3,
	ClaimIncomplete: 3,
}

// ClaimStatusRegression reports whether moving from one claim status to
// another walks backwards against the normal progression. Such moves are
// still applied but should be flagged as suspicious by callers.
func ClaimStatusRegression(from, to ClaimStatus) bool {
	return claimStatusRank[to] < claimStatusRank[from]
}
