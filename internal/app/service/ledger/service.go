package ledger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/pkg/logctx"
	"github.com/fatflowers/crm/pkg/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var ErrInvalidRecord = errors.New("invalid subscription record")

// Service applies webhook-derived mutations to the subscription ledger.
type Service struct {
	store Store
	log   *zap.SugaredLogger
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// Store exposes the underlying store to read-side services.
func (s *Service) Store() Store { return s.store }

// ApplySubscriptionCreated inserts rec, or overwrites every field of an existing record with the same id.
func (s *Service) ApplySubscriptionCreated(ctx context.Context, rec *models.Subscription) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	rec = rec.Clone()
	rec.Source = types.SubscriptionSourceWebhook
	if err := s.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to store subscription %s: %w", rec.ID, err)
	}
	logctx.FromCtx(ctx, s.log).Infow("ledger_subscription_stored", "subscription_id", rec.ID, "status", rec.Status)
	return nil
}

// ApplySubscriptionUpdated patches status and period end of a known record. An
// unknown id is treated as a creation, recovering from a missed create event.
func (s *Service) ApplySubscriptionUpdated(ctx context.Context, rec *models.Subscription) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	found, err := s.store.Update(ctx, rec.ID, func(cur *models.Subscription) error {
		cur.Status = rec.Status
		cur.CurrentPeriodEnd = rec.CurrentPeriodEnd
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", rec.ID, err)
	}
	if !found {
		logctx.FromCtx(ctx, s.log).Infow("ledger_update_for_unknown_subscription", "subscription_id", rec.ID)
		return s.ApplySubscriptionCreated(ctx, rec)
	}
	logctx.FromCtx(ctx, s.log).Infow("ledger_subscription_updated", "subscription_id", rec.ID, "status", rec.Status)
	return nil
}

// ApplySubscriptionDeleted marks a known record canceled. The record is kept for history.
func (s *Service) ApplySubscriptionDeleted(ctx context.Context, id string, now time.Time) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	found, err := s.store.Update(ctx, id, func(cur *models.Subscription) error {
		cur.Status = types.SubscriptionStatusCanceled
		cur.CanceledAt = lo.ToPtr(now)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cancel subscription %s: %w", id, err)
	}
	if found {
		logctx.FromCtx(ctx, s.log).Infow("ledger_subscription_canceled", "subscription_id", id)
	}
	return nil
}

// ApplyPaymentSucceeded records the last payment on a known subscription.
// Unknown or empty ids are ignored; no record is fabricated.
func (s *Service) ApplyPaymentSucceeded(ctx context.Context, subscriptionID string, amount int64, now time.Time) error {
	if subscriptionID == "" {
		return nil
	}
	found, err := s.store.Update(ctx, subscriptionID, func(cur *models.Subscription) error {
		cur.LastPayment = lo.ToPtr(now)
		cur.LastPaymentAmount = lo.ToPtr(amount)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record payment for %s: %w", subscriptionID, err)
	}
	if found {
		logctx.FromCtx(ctx, s.log).Infow("ledger_payment_recorded", "subscription_id", subscriptionID, "amount", amount)
	}
	return nil
}

// ListSubscriptions returns every record, newest created_at first.
func (s *Service) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(recs)
	return recs, nil
}

// SortNewestFirst orders records by created_at descending, then id ascending.
func SortNewestFirst(recs []*models.Subscription) {
	slices.SortStableFunc(recs, func(a, b *models.Subscription) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
