package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/fatflowers/crm/internal/models"
	"github.com/fatflowers/crm/pkg/types"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds statements against the postgres dialect without a server.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=crm dbname=crm sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

// captureSQL records every statement the store builds.
func captureSQL(t *testing.T, db *gorm.DB) *[]string {
	t.Helper()
	var out []string
	record := func(d *gorm.DB) {
		out = append(out, d.Dialector.Explain(d.Statement.SQL.String(), d.Statement.Vars...))
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", record))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", record))
	return &out
}

func TestGormStore_LockForUpdate(t *testing.T) {
	db := newDryRunDB(t)
	var rec models.Subscription
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return lockSubscription(tx, "sub_1", &rec)
	})

	require.Contains(t, sql, `FROM "subscription"`)
	require.Contains(t, sql, "id = 'sub_1'")
	require.Contains(t, sql, "LIMIT 1")
	require.Contains(t, sql, "FOR UPDATE")
}

func TestGormStore_EventUpsertReplacesByID(t *testing.T) {
	db := newDryRunDB(t)
	ev := &models.WebhookEvent{ID: "evt_1", Type: "invoice.payment_succeeded", ReceivedAt: time.Now()}
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertByID(tx, ev)
	})

	require.Contains(t, sql, `INSERT INTO "webhook_event"`)
	require.Contains(t, sql, `ON CONFLICT ("id") DO UPDATE SET`)
	require.Contains(t, sql, `"processed"="excluded"."processed"`)
	require.Contains(t, sql, `"received_at"="excluded"."received_at"`)
}

func TestGormStore_TrimKeepsNewestEvents(t *testing.T) {
	db := newDryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return trimEvents(tx, EventLogCapacity)
	})

	require.Contains(t, sql, `DELETE FROM "webhook_event"`)
	require.Contains(t, sql, "id NOT IN (SELECT")
	require.Contains(t, sql, "ORDER BY received_at DESC LIMIT 100)")
}

func TestGormStore_ReadAndUpsertStatements(t *testing.T) {
	db := newDryRunDB(t)
	stmts := captureSQL(t, db)
	s := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, &models.Subscription{ID: "sub_1", Status: types.SubscriptionStatusActive}))
	_, err := s.ListEvents(ctx, 50)
	require.NoError(t, err)
	_, err = s.ListEvents(ctx, 0)
	require.NoError(t, err)

	require.Len(t, *stmts, 3)
	require.Contains(t, (*stmts)[0], `INSERT INTO "subscription"`)
	require.Contains(t, (*stmts)[0], `ON CONFLICT ("id") DO UPDATE SET`)
	require.Contains(t, (*stmts)[1], `ORDER BY received_at DESC LIMIT 50`)
	require.NotContains(t, (*stmts)[2], "LIMIT")
}
