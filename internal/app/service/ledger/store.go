package ledger

import (
	"context"
	"errors"

	"github.com/fatflowers/crm/internal/models"
)

// EventLogCapacity is the number of webhook events the ledger retains.
const EventLogCapacity = 100

var ErrNotFound = errors.New("subscription not found")

// UpdateFunc mutates an existing record in place. Returning an error aborts the update.
type UpdateFunc func(rec *models.Subscription) error

// Store is the ledger's storage contract. Implementations serialise writers so
// that Update is an atomic read-modify-write, and keep at most one record per id.
type Store interface {
	// Get returns a copy of the record, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Subscription, error)
	// Upsert inserts rec or overwrites every field of the existing record with the same id.
	Upsert(ctx context.Context, rec *models.Subscription) error
	// Update applies fn to the record with the given id. It reports false, without
	// calling fn, when no such record exists.
	Update(ctx context.Context, id string, fn UpdateFunc) (bool, error)
	// List returns copies of every record in unspecified order.
	List(ctx context.Context) ([]*models.Subscription, error)
	// AppendEvent adds ev at the head of the event log and evicts entries beyond EventLogCapacity.
	AppendEvent(ctx context.Context, ev *models.WebhookEvent) error
	// ListEvents returns up to limit events, newest first. limit <= 0 means all retained events.
	ListEvents(ctx context.Context, limit int) ([]*models.WebhookEvent, error)
}
