package notification_handler

import (
	"context"
	"fmt"
	"time"

	"github.com/fatflowers/crm/internal/app/service/ledger"
	notificationlog "github.com/fatflowers/crm/internal/app/service/notification_log"
	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/fatflowers/crm/pkg/config"
	"github.com/fatflowers/crm/pkg/logctx"
	"github.com/fatflowers/crm/pkg/metrics"
	"github.com/fatflowers/crm/pkg/types"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// eventHandler applies one event type to the ledger and returns the customer email to log.
type eventHandler func(ctx context.Context, p *StripeNotificationParser) (string, error)

// Result describes a verified delivery. Processing failures are reported here, not as errors.
type Result struct {
	EventID   string
	EventType string
	Processed bool
	Error     string
}

type NotificationHandler struct {
	verifier EventVerifier
	ledger   *ledger.Service
	notifSvc *notificationlog.Service
	lookup   CustomerLookup
	metrics  *metrics.WebhookRecorder
	Logger   *zap.SugaredLogger

	now      func() time.Time
	handlers map[types.StripeEventType]eventHandler
}

func NewNotificationHandler(
	verifier EventVerifier,
	ledgerSvc *ledger.Service,
	notif *notificationlog.Service,
	lookup CustomerLookup,
	recorder *metrics.WebhookRecorder,
	log *zap.SugaredLogger,
) *NotificationHandler {
	h := &NotificationHandler{
		verifier: verifier,
		ledger:   ledgerSvc,
		notifSvc: notif,
		lookup:   lookup,
		metrics:  recorder,
		Logger:   log,
		now:      time.Now,
	}
	h.handlers = map[types.StripeEventType]eventHandler{
		types.StripeEventSubscriptionCreated:     h.handleSubscriptionCreated,
		types.StripeEventSubscriptionUpdated:     h.handleSubscriptionUpdated,
		types.StripeEventSubscriptionDeleted:     h.handleSubscriptionDeleted,
		types.StripeEventInvoicePaymentSucceeded: h.handlePaymentSucceeded,
	}
	return h
}

// HandleNotification verifies and applies one webhook delivery. The only error it
// returns wraps stripe_notification.ErrInvalidSignature, in which case nothing was recorded.
func (h *NotificationHandler) HandleNotification(ctx context.Context, payload []byte, signature string) (*Result, error) {
	log := logctx.FromCtx(ctx, h.Logger)

	parser, err := GetStripeNotificationParser(h.verifier, payload, signature)
	if err != nil {
		log.Warnw("webhook verification failed", "error", err.Error())
		return nil, err
	}

	ev := newWebhookEvent(ctx, parser, h.now())
	log = log.With("event_id", ev.ID, "event_type", ev.Type)

	start := time.Now()
	handler, ok := h.handlers[types.StripeEventType(ev.Type)]
	if !ok {
		ev.CustomerEmail = types.NotApplicable
		log.Infow("unhandled webhook event type")
	} else {
		email, err := h.dispatch(ctx, handler, parser)
		ev.CustomerEmail = lo.Ternary(email == "", types.UnknownCustomer, email)
		if err != nil {
			ev.Error = lo.ToPtr(err.Error())
			log.Errorw("failed to process webhook event", "error", err.Error())
		} else {
			ev.Processed = true
			log.Infow("webhook event processed")
		}
	}
	h.metrics.Observe(ev.Type, ev.Processed, time.Since(start))

	// The delivery is acknowledged even when the audit write fails.
	_ = h.notifSvc.Record(ctx, ev)

	return &Result{
		EventID:   ev.ID,
		EventType: ev.Type,
		Processed: ev.Processed,
		Error:     lo.FromPtr(ev.Error),
	}, nil
}

func (h *NotificationHandler) dispatch(ctx context.Context, fn eventHandler, p *StripeNotificationParser) (email string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling event: %v", r)
		}
	}()
	return fn(ctx, p)
}

func (h *NotificationHandler) handleSubscriptionCreated(ctx context.Context, p *StripeNotificationParser) (string, error) {
	sub, err := p.GetSubscription(ctx)
	if err != nil {
		return "", err
	}
	cust := resolveCustomer(ctx, h.lookup, sub.Customer, h.Logger)
	return cust.Email, h.ledger.ApplySubscriptionCreated(ctx, h.buildRecord(sub, cust))
}

func (h *NotificationHandler) handleSubscriptionUpdated(ctx context.Context, p *StripeNotificationParser) (string, error) {
	sub, err := p.GetSubscription(ctx)
	if err != nil {
		return "", err
	}
	cust := resolveCustomer(ctx, h.lookup, sub.Customer, h.Logger)
	return cust.Email, h.ledger.ApplySubscriptionUpdated(ctx, h.buildRecord(sub, cust))
}

func (h *NotificationHandler) handleSubscriptionDeleted(ctx context.Context, p *StripeNotificationParser) (string, error) {
	sub, err := p.GetSubscription(ctx)
	if err != nil {
		return "", err
	}
	cust := resolveCustomer(ctx, h.lookup, sub.Customer, h.Logger)
	return cust.Email, h.ledger.ApplySubscriptionDeleted(ctx, sub.ID, h.now())
}

func (h *NotificationHandler) handlePaymentSucceeded(ctx context.Context, p *StripeNotificationParser) (string, error) {
	inv, err := p.GetInvoice(ctx)
	if err != nil {
		return "", err
	}
	return inv.CustomerEmail, h.ledger.ApplyPaymentSucceeded(ctx, inv.SubscriptionID(), inv.AmountPaid, h.now())
}

func (h *NotificationHandler) buildRecord(sub *stripe_notification.Subscription, cust customerDetails) *models.Subscription {
	created := stripe_notification.Unix(sub.Created)
	if created.IsZero() {
		created = h.now()
	}
	return &models.Subscription{
		ID:                 sub.ID,
		CustomerID:         cust.ID,
		CustomerName:       cust.Name,
		CustomerEmail:      cust.Email,
		PlanID:             sub.PlanID(),
		PlanName:           sub.PlanName(),
		Amount:             sub.Amount(),
		Currency:           sub.Currency(),
		Interval:           types.BillingInterval(sub.Interval()),
		Status:             types.NormalizeSubscriptionStatus(sub.Status),
		CreatedAt:          created,
		CurrentPeriodStart: sub.PeriodStart(),
		CurrentPeriodEnd:   sub.PeriodEnd(),
	}
}

// NewStripeVerifier builds the signature verifier from the configured signing secret.
func NewStripeVerifier(cfg *config.Config) EventVerifier {
	return stripe_notification.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)
}

var Module = fx.Options(
	fx.Provide(NewStripeVerifier),
	fx.Provide(func(c *stripe_api.Client) CustomerLookup { return c }),
	fx.Provide(NewNotificationHandler),
)
