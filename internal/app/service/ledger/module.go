package ledger

import (
	"fmt"

	cfgpkg "github.com/fatflowers/crm/pkg/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewStore selects the ledger backend from configuration.
func NewStore(cfg *cfgpkg.Config, db *gorm.DB, log *zap.SugaredLogger) (Store, error) {
	switch cfg.Ledger.Store {
	case cfgpkg.StorePostgres:
		if db == nil {
			return nil, fmt.Errorf("%w: postgres ledger without database", cfgpkg.ErrInvalidStore)
		}
		log.Infow("ledger store selected", "store", cfg.Ledger.Store)
		return NewGormStore(db), nil
	case cfgpkg.StoreMemory, "":
		log.Infow("ledger store selected", "store", cfgpkg.StoreMemory)
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", cfgpkg.ErrInvalidStore, cfg.Ledger.Store)
	}
}

// Module exposes the ledger store and service via Fx.
var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Provide(NewService),
)
