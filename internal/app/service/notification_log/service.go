package notification_log

import (
	"context"
	"fmt"

	"github.com/fatflowers/crm/internal/app/service/ledger"
	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/pkg/logctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MaxEventsResponse caps how many events a single read returns.
const MaxEventsResponse = 50

type Service struct {
	store ledger.Store
	log   *zap.SugaredLogger
}

func New(store ledger.Store, log *zap.SugaredLogger) *Service { return &Service{store: store, log: log} }

// Record appends ev to the bounded webhook event log. Failures are logged and
// returned; they never affect ledger state.
func (s *Service) Record(ctx context.Context, ev *models.WebhookEvent) error {
	if ev == nil {
		return nil
	}
	if err := s.store.AppendEvent(ctx, ev); err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("failed to save webhook event", "event_id", ev.ID, "event_type", ev.Type, "error", err.Error())
		return fmt.Errorf("failed to save webhook event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. Limits outside (0, MaxEventsResponse] are clamped.
func (s *Service) Recent(ctx context.Context, limit int) ([]*models.WebhookEvent, error) {
	if limit <= 0 || limit > MaxEventsResponse {
		limit = MaxEventsResponse
	}
	return s.store.ListEvents(ctx, limit)
}

var Module = fx.Options(
	fx.Provide(New),
)
