package notification_handler

import (
	"context"

	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_notification"
	"github.com/fatflowers/crm/pkg/logctx"
	"github.com/fatflowers/crm/pkg/types"
	"go.uber.org/zap"
)

type CustomerLookup interface {
	LookupCustomer(ctx context.Context, customerID string) (*stripe_api.CustomerInfo, error)
}

type customerDetails struct {
	ID    string
	Name  string
	Email string
}

// resolveCustomer never fails: a missing customer or a failed lookup yields placeholders.
func resolveCustomer(ctx context.Context, lookup CustomerLookup, ref stripe_notification.ExpandableRef, log *zap.SugaredLogger) customerDetails {
	out := customerDetails{ID: ref.ID, Name: types.UnknownCustomer, Email: types.UnknownCustomer}
	if ref.ID == "" {
		return out
	}
	if ref.Email != "" {
		out.Email = ref.Email
		if ref.Name != "" {
			out.Name = ref.Name
		}
		return out
	}
	if lookup == nil {
		return out
	}

	info, err := lookup.LookupCustomer(ctx, ref.ID)
	if err != nil {
		logctx.FromCtx(ctx, log).Warnw("customer lookup failed", "customer_id", ref.ID, "error", err.Error())
		return out
	}
	if info.Name != "" {
		out.Name = info.Name
	}
	out.Email = types.NoCustomerEmail
	if info.Email != "" {
		out.Email = info.Email
	}
	return out
}
