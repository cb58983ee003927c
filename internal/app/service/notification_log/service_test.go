package notification_log

import (
	"context"
	"fmt"
	"testing"

	"github.com/fatflowers/crm/internal/app/service/ledger"
	"github.com/fatflowers/crm/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecent_CapsAtFifty(t *testing.T) {
	ctx := context.Background()
	svc := New(ledger.NewMemoryStore(), zap.NewNop().Sugar())
	for i := range 80 {
		require.NoError(t, svc.Record(ctx, &models.WebhookEvent{ID: fmt.Sprintf("evt_%d", i)}))
	}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 0, want: MaxEventsResponse},
		{limit: -1, want: MaxEventsResponse},
		{limit: 10, want: 10},
		{limit: 500, want: MaxEventsResponse},
	}
	for _, tt := range tests {
		got, err := svc.Recent(ctx, tt.limit)
		require.NoError(t, err)
		require.Len(t, got, tt.want)
		require.Equal(t, "evt_79", got[0].ID)
	}
}

func TestRecord_NilIsIgnored(t *testing.T) {
	svc := New(ledger.NewMemoryStore(), zap.NewNop().Sugar())
	require.NoError(t, svc.Record(context.Background(), nil))
	got, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, got)
}
