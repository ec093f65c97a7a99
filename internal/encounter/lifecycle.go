package encounter

import (
	"fmt"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// statusRank orders the encounter workflow stages. Transitions may only
// move to a strictly higher rank; skipping intermediate stages is
// allowed (registration desks routinely send a waiting patient straight
// to pharmacy after a walk-in consult).
var statusRank = map[types.EncounterStatus]int{
	types.EncounterWaiting:  0,
	types.EncounterTriaged:  1,
	types.EncounterDoctor:   2,
	types.EncounterPharmacy: 3,
	types.EncounterBilling:  4,
	types.EncounterFinished: 5,
}

// CheckTransition validates a workflow transition. It returns nil when
// the move is allowed and a validation error otherwise.
func CheckTransition(from, to types.EncounterStatus) error {
	if !types.ValidEncounterStatus(to) {
		return types.NewValidationError(types.ErrCodeInvalidTransition,
			fmt.Sprintf("unknown encounter status %q", to), nil)
	}
	if !types.ValidEncounterStatus(from) {
		return types.NewValidationError(types.ErrCodeInvalidTransition,
			fmt.Sprintf("unknown encounter status %q", from), nil)
	}
	if from == types.EncounterFinished {
		return types.NewValidationError(types.ErrCodeInvalidTransition,
			"encounter is already finished", nil)
	}
	if statusRank[to] <= statusRank[from] {
		return types.NewValidationError(types.ErrCodeInvalidTransition,
			fmt.Sprintf("cannot move encounter from %s to %s", from, to),
			map[string]interface{}{"from": string(from), "to": string(to)})
	}
	return nil
}

// IsBackward reports whether a move walks against the workflow order
func IsBackward(from, to types.EncounterStatus) bool {
	return statusRank[to] < statusRank[from]
}
