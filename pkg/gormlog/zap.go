package gormlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/fatflowers/crm/pkg/config"
	"github.com/fatflowers/crm/pkg/logctx"
)

const slowQueryThreshold = 200 * time.Millisecond

// ZapLogger implements gorm.io/gorm/logger.Interface on top of the request-scoped
// zap logger, so SQL lines carry the trace_id of the webhook or API call.
type ZapLogger struct {
	base  *zap.SugaredLogger
	level gormlogger.LogLevel
	slow  time.Duration
}

// New logs every statement in dev and only slow or failed ones elsewhere.
func New(base *zap.SugaredLogger, env config.Env) *ZapLogger {
	level := gormlogger.Warn
	if env == config.EnvDev {
		level = gormlogger.Info
	}
	return &ZapLogger{base: base.With("component", "gorm"), level: level, slow: slowQueryThreshold}
}

func (z *ZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *z
	cp.level = level
	return &cp
}

func (z *ZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Info {
		logctx.FromCtx(ctx, z.base).Infow(msg, "args", data)
	}
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Warn {
		logctx.FromCtx(ctx, z.base).Warnw(msg, "args", data)
	}
}

func (z *ZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Error {
		logctx.FromCtx(ctx, z.base).Errorw(msg, "args", data)
	}
}

func (z *ZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if z.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logctx.FromCtx(ctx, z.base)
	fields := []interface{}{
		"rows", rows,
		"elapsed_ms", elapsed.Milliseconds(),
		"caller", shortCaller(utils.FileWithLineNum()),
		"sql", sql,
	}
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		lg.Errorw("gorm_trace", append(fields, "err", err)...)
	case z.slow > 0 && elapsed > z.slow:
		lg.Warnw("gorm_slow", fields...)
	case z.level >= gormlogger.Info:
		lg.Debugw("gorm", fields...)
	}
}

// shortCaller trims an absolute source path to its repo-relative form,
// e.g. /src/crm/internal/app/service/ledger/gorm_store.go:42 -> internal/app/service/ledger/gorm_store.go:42
func shortCaller(s string) string {
	p := strings.ReplaceAll(s, `\`, "/")
	for _, marker := range []string{"/internal/", "/pkg/", "/cmd/"} {
		if i := strings.Index(p, marker); i >= 0 {
			return p[i+1:]
		}
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
