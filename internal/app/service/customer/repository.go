package customer

import (
	"context"
	"fmt"
	"slices"

	"github.com/fatflowers/crm/internal/models"
	cfgpkg "github.com/fatflowers/crm/pkg/config"
	"github.com/fatflowers/crm/pkg/tool"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository is the read side of the CRM customer table.
type Repository interface {
	List(ctx context.Context) ([]*models.Customer, error)
}

// GormRepository reads customers from the dashboard's Postgres (Supabase) database.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository { return &GormRepository{db: db} }

func (r *GormRepository) List(ctx context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	if err := r.db.WithContext(ctx).Order("join_date DESC").Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return out, nil
}

// MemoryRepository serves a fixed customer list, used when no database is configured.
type MemoryRepository struct {
	customers []*models.Customer
}

func NewMemoryRepository(customers []*models.Customer) *MemoryRepository {
	seeded := make([]*models.Customer, 0, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		cp := *c
		if cp.ID == "" {
			cp.ID = tool.GenerateUUIDV7()
		}
		seeded = append(seeded, &cp)
	}
	return &MemoryRepository{customers: seeded}
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Customer, error) {
	out := make([]*models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *models.Customer) int {
		return b.Joined().Compare(a.Joined())
	})
	return out, nil
}

// NewRepository prefers the database and falls back to configured seed customers.
func NewRepository(cfg *cfgpkg.Config, db *gorm.DB, log *zap.SugaredLogger) Repository {
	if db != nil {
		log.Infow("customer repository selected", "source", "postgres")
		return NewGormRepository(db)
	}
	log.Infow("customer repository selected", "source", "config", "count", len(cfg.Customers))
	return NewMemoryRepository(cfg.Customers)
}

var Module = fx.Options(
	fx.Provide(NewRepository),
)
