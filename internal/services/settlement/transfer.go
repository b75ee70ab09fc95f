package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransferClient confirms the external bank transfer for a payout. The call
// is the pipeline's one designed suspension point: the investment/payout pair
// sits stably in released/processing until it returns.
type TransferClient interface {
	Confirm(ctx context.Context, payoutID uuid.UUID) error
}

// SimulatedTransfer stands in for a real transfer provider with a fixed
// confirmation delay.
type SimulatedTransfer struct {
	Delay time.Duration
}

// Confirm waits out the simulated processing delay
func (t SimulatedTransfer) Confirm(ctx context.Context, payoutID uuid.UUID) error {
	timer := time.NewTimer(t.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
