package app

import (
	"time"

	"github.com/fatflowers/crm/internal/app/api/server"
	"github.com/fatflowers/crm/internal/app/service/customer"
	"github.com/fatflowers/crm/internal/app/service/ledger"
	notificationhandler "github.com/fatflowers/crm/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/crm/internal/app/service/notification_log"
	"github.com/fatflowers/crm/internal/app/service/statistics"
	"github.com/fatflowers/crm/internal/platform/db"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
	"github.com/fatflowers/crm/pkg/config"
	"github.com/fatflowers/crm/pkg/logger"
	"github.com/fatflowers/crm/pkg/metrics"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.WithLogger(func(l *zap.SugaredLogger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Desugar()}
	}),
	metrics.Module,
	db.Module,
	server.Module,
	stripe_api.Module,
	ledger.Module,
	customer.Module,
	statistics.Module,
	notificationlog.Module,
	notificationhandler.Module,
)
