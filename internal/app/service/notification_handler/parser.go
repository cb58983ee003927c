package notification_handler

import (
	"context"
	"time"

	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/fatflowers/crm/pkg/types"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/datatypes"
)

// NotificationParser exposes the envelope of a verified provider event.
type NotificationParser interface {
	GetEventID(ctx context.Context) string
	GetEventType(ctx context.Context) types.StripeEventType
	GetNotificationTime(ctx context.Context) time.Time
	GetData(ctx context.Context) datatypes.JSON
}

var _ NotificationParser = (*StripeNotificationParser)(nil)

// newWebhookEvent builds the log entry for a verified delivery from its envelope.
func newWebhookEvent(ctx context.Context, p NotificationParser, receivedAt time.Time) *models.WebhookEvent {
	return &models.WebhookEvent{
		ID:         p.GetEventID(ctx),
		Type:       string(p.GetEventType(ctx)),
		CreatedAt:  p.GetNotificationTime(ctx),
		Data:       p.GetData(ctx),
		ReceivedAt: receivedAt,
	}
}

type EventVerifier interface {
	Verify(payload []byte, header string) (*stripe.Event, error)
}

type StripeNotificationParser struct {
	Event *stripe.Event
}

// GetStripeNotificationParser verifies payload against its signature header before
// exposing anything from it.
func GetStripeNotificationParser(verifier EventVerifier, payload []byte, header string) (*StripeNotificationParser, error) {
	event, err := verifier.Verify(payload, header)
	if err != nil {
		return nil, err
	}
	return &StripeNotificationParser{Event: event}, nil
}

func (p *StripeNotificationParser) GetEventID(ctx context.Context) string {
	return p.Event.ID
}

func (p *StripeNotificationParser) GetEventType(ctx context.Context) types.StripeEventType {
	return types.StripeEventType(p.Event.Type)
}

func (p *StripeNotificationParser) GetNotificationTime(ctx context.Context) time.Time {
	return stripe_notification.Unix(p.Event.Created)
}

func (p *StripeNotificationParser) GetData(ctx context.Context) datatypes.JSON {
	if p.Event.Data == nil || len(p.Event.Data.Raw) == 0 {
		return nil
	}
	return datatypes.JSON(p.Event.Data.Raw)
}

func (p *StripeNotificationParser) GetSubscription(ctx context.Context) (*stripe_notification.Subscription, error) {
	return stripe_notification.DecodeSubscription(p.GetData(ctx))
}

func (p *StripeNotificationParser) GetInvoice(ctx context.Context) (*stripe_notification.Invoice, error) {
	return stripe_notification.DecodeInvoice(p.GetData(ctx))
}
