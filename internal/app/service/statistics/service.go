package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/fatflowers/crm/internal/app/service/customer"
	"github.com/fatflowers/crm/internal/app/service/ledger"
	"go.uber.org/fx"
)

// Service computes ledger statistics and customer analytics on every call.
type Service struct {
	store     ledger.Store
	customers customer.Repository
	now       func() time.Time
}

func New(store ledger.Store, customers customer.Repository) *Service {
	return &Service{store: store, customers: customers, now: time.Now}
}

// GetSubscriptionStats aggregates the current ledger snapshot. A store failure
// is returned as is; no partial aggregate is produced.
func (s *Service) GetSubscriptionStats(ctx context.Context) (*SubscriptionStats, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	st := ComputeSubscriptionStats(recs)
	return &st, nil
}

// GetCustomerAnalytics processes the current customer list.
func (s *Service) GetCustomerAnalytics(ctx context.Context) (*CustomerAnalytics, error) {
	if s.customers == nil {
		return ProcessCustomers(nil, s.now()), nil
	}
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return ProcessCustomers(list, s.now()), nil
}

var Module = fx.Options(
	fx.Provide(New),
)
