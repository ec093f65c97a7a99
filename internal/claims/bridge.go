package claims

import (
	"sync"
	"time"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Bridge outcomes
const (
	OutcomeApplied   = "applied"
	OutcomeStale     = "stale"
	OutcomeCancelled = "cancelled"
)

// Bridge simulates the insurer-side acknowledgement of a submitted
// claim: a fixed delay after submission it moves the claim from
// Submitted to Processing. Each scheduled transition can be cancelled,
// and a transition that finds the claim gone or already moved past
// Submitted is dropped as stale.
type Bridge struct {
	repository interfaces.ClaimRepository
	delay      time.Duration
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewBridge creates a claim bridge with the given acknowledgement delay
func NewBridge(repo interfaces.ClaimRepository, delay time.Duration, log *logger.Logger, metrics *monitoring.MetricsCollector) *Bridge {
	return &Bridge{
		repository: repo,
		delay:      delay,
		logger:     log,
		metrics:    metrics,
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule arms the acknowledgement timer for a freshly submitted claim.
// Scheduling the same claim again replaces the pending timer.
func (b *Bridge) Schedule(claimID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.timers[claimID]; ok {
		t.Stop()
	}
	b.timers[claimID] = time.AfterFunc(b.delay, func() {
		b.fire(claimID)
	})
}

// Cancel stops the pending acknowledgement for a claim. It reports
// whether a timer was still armed.
func (b *Bridge) Cancel(claimID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.timers[claimID]
	if !ok {
		return false
	}
	delete(b.timers, claimID)
	if t.Stop() {
		b.metrics.RecordBridgeOutcome(OutcomeCancelled)
		b.logger.Infof("Cancelled pending bridge acknowledgement for claim %s", claimID)
		return true
	}
	return false
}

// CancelAll stops every pending acknowledgement. Used on shutdown.
func (b *Bridge) CancelAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, t := range b.timers {
		if t.Stop() {
			b.metrics.RecordBridgeOutcome(OutcomeCancelled)
		}
		delete(b.timers, id)
	}
}

// Pending reports whether a claim still has an armed timer
func (b *Bridge) Pending(claimID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.timers[claimID]
	return ok
}

func (b *Bridge) fire(claimID string) {
	b.mu.Lock()
	delete(b.timers, claimID)
	b.mu.Unlock()

	claim, err := b.repository.GetByID(claimID)
	if err != nil {
		b.metrics.RecordBridgeOutcome(OutcomeStale)
		b.logger.Warnf("Bridge acknowledgement for missing claim %s dropped", claimID)
		return
	}
	if claim.Status != types.ClaimSubmitted {
		b.metrics.RecordBridgeOutcome(OutcomeStale)
		b.logger.Warnf("Bridge acknowledgement for claim %s dropped, status is already %s", claimID, claim.Status)
		return
	}

	claim.Status = types.ClaimProcessing
	if err := b.repository.Replace(claim); err != nil {
		b.metrics.RecordBridgeOutcome(OutcomeStale)
		b.logger.Errorf("Failed to apply bridge acknowledgement for claim %s: %v", claimID, err)
		return
	}

	b.metrics.RecordBridgeOutcome(OutcomeApplied)
	b.logger.Infof("Claim %s acknowledged by insurer bridge, now Processing", claimID)
}
