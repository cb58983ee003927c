package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatflowers/crm/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists the ledger in Postgres. Row locks on Update serialise
// concurrent writers across server instances.
type GormStore struct {
	db  *gorm.DB
	cap int
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, cap: EventLogCapacity}
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Subscription, error) {
	var rec models.Subscription
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &rec, nil
}

func (s *GormStore) Upsert(ctx context.Context, rec *models.Subscription) error {
	if err := upsertByID(s.db.WithContext(ctx), rec).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, id string, fn UpdateFunc) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.Subscription
		err := lockSubscription(tx, id, &rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		found = true
		if err := fn(&rec); err != nil {
			return err
		}
		rec.ID = id
		return tx.Save(&rec).Error
	})
	return found, err
}

func (s *GormStore) List(ctx context.Context) ([]*models.Subscription, error) {
	var out []*models.Subscription
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return out, nil
}

func (s *GormStore) AppendEvent(ctx context.Context, ev *models.WebhookEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// redelivered events replace their earlier entry
		if err := upsertByID(tx, ev).Error; err != nil {
			return fmt.Errorf("failed to append webhook event: %w", err)
		}
		if err := trimEvents(tx, s.cap).Error; err != nil {
			return fmt.Errorf("failed to trim webhook events: %w", err)
		}
		return nil
	})
}

func (s *GormStore) ListEvents(ctx context.Context, limit int) ([]*models.WebhookEvent, error) {
	q := s.db.WithContext(ctx).Order("received_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*models.WebhookEvent
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhook events: %w", err)
	}
	return out, nil
}

func upsertByID(tx *gorm.DB, value any) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(value)
}

func lockSubscription(tx *gorm.DB, id string, rec *models.Subscription) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(rec)
}

// trimEvents deletes all but the keep newest events.
func trimEvents(tx *gorm.DB, keep int) *gorm.DB {
	newest := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.WebhookEvent{}).Select("id").Order("received_at DESC").Limit(keep)
	return tx.Where("id NOT IN (?)", newest).Delete(&models.WebhookEvent{})
}
