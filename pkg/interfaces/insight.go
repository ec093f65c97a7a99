package interfaces

import (
	"context"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// InsightClient is the boundary to the external text-suggestion service.
// Implementations never return an error: any failure degrades to a fixed
// fallback string so the advisory text can always be rendered.
type InsightClient interface {
	SOAPAssist(ctx context.Context, note *types.SOAPNote) string
	DashboardInsights(ctx context.Context, encounters []*types.Encounter) string
}
