// Package settlement advances escrowed investments through payout: the weekly
// sweep selects eligible investments, releases each one with a payout record,
// and completes the pair once the external transfer confirms.
package settlement

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/services/notify"
	"github.com/adiontis/investment-bridge/internal/storage"
)

// defaultConcurrency bounds how many investments settle in parallel per sweep
const defaultConcurrency = 4

// Processor settles individual investments. Each investment is an
// independent unit of work; a failure in one never blocks the others, and
// every step is idempotent under retry.
type Processor struct {
	settlements *storage.SettlementRepository
	transfers   TransferClient
	notifier    *notify.Service
	concurrency int
}

// NewProcessor creates a settlement processor
func NewProcessor(settlements *storage.SettlementRepository, transfers TransferClient, notifier *notify.Service) *Processor {
	return &Processor{
		settlements: settlements,
		transfers:   transfers,
		notifier:    notifier,
		concurrency: defaultConcurrency,
	}
}

// RunSweep performs one settlement pass: release and complete every eligible
// escrowed investment, then retry completion for payouts whose transfer
// failed in an earlier pass. Safe to invoke repeatedly; re-running only ever
// re-selects work that never finished.
func (p *Processor) RunSweep(ctx context.Context, now time.Time) error {
	eligible, err := p.settlements.EligibleInvestments(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list eligible investments: %w", err)
	}
	log.Printf("settlement sweep: %d investments ready for payout", len(eligible))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, inv := range eligible {
		inv := inv
		g.Go(func() error {
			if err := p.Settle(gctx, inv, now); err != nil {
				// Retry-driven: the pair stays in released/processing and the
				// next sweep picks it up again.
				log.Printf("settlement of investment %s incomplete: %v", inv.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return p.retryStuck(ctx, now)
}

// Settle runs both phases for one investment: release (create the payout,
// move the investment to released, atomically) and complete (after transfer
// confirmation, move both records to paid, atomically).
func (p *Processor) Settle(ctx context.Context, inv *models.Investment, now time.Time) error {
	payout := models.NewPayout(inv, now)

	released, err := p.settlements.Release(ctx, inv, payout)
	if err != nil {
		return fmt.Errorf("release failed: %w", err)
	}
	if !released {
		// Already past escrow; nothing to do here.
		return nil
	}
	log.Printf("released investment %s: payout %s for $%s", inv.ID, payout.ID, payout.Amount.StringFixed(2))

	return p.Complete(ctx, payout, now)
}

// Complete confirms the transfer and finishes the payout. On transfer
// failure the released/processing pair is left untouched for retry.
func (p *Processor) Complete(ctx context.Context, payout *models.Payout, now time.Time) error {
	if err := p.transfers.Confirm(ctx, payout.ID); err != nil {
		return fmt.Errorf("transfer confirmation failed for payout %s: %w", payout.ID, err)
	}

	completed, err := p.settlements.Complete(ctx, payout.ID, now)
	if err != nil {
		return fmt.Errorf("completion failed for payout %s: %w", payout.ID, err)
	}
	if completed {
		log.Printf("completed payout %s", payout.ID)
		p.notifier.PayoutCompleted(payout.UserID, payout.Amount)
	}
	return nil
}

// retryStuck re-attempts completion for payouts stranded in processing
func (p *Processor) retryStuck(ctx context.Context, now time.Time) error {
	stuck, err := p.settlements.ProcessingPayouts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stuck payouts: %w", err)
	}

	for _, payout := range stuck {
		if err := p.Complete(ctx, payout, now); err != nil {
			log.Printf("retry of payout %s failed: %v", payout.ID, err)
		}
	}
	return nil
}
