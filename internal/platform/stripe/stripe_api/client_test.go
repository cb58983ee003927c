package stripe_api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatflowers/crm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := &config.Config{Stripe: config.StripeConfig{
		SecretKey:     "sk_test_123",
		LookupTimeout: 2 * time.Second,
		APIURL:        srv.URL,
	}}
	return NewClient(cfg, zap.NewNop().Sugar())
}

func TestLookupCustomer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/customers/cus_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_1","object":"customer","name":"Ada Lovelace","email":"ada@example.com"}`))
	})

	info, err := c.LookupCustomer(context.Background(), "cus_1")
	require.NoError(t, err)
	require.Equal(t, &CustomerInfo{ID: "cus_1", Name: "Ada Lovelace", Email: "ada@example.com"}, info)
}

func TestLookupCustomer_Errors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such customer: 'cus_x'"}}`))
	})

	_, err := c.LookupCustomer(context.Background(), "cus_x")
	require.Error(t, err)

	_, err = c.LookupCustomer(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingCustomerID)
}

func TestListCustomerSubscriptions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		assert.Equal(t, "cus_1", r.URL.Query().Get("customer"))
		assert.Equal(t, "all", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","url":"/v1/subscriptions","has_more":false,"data":[
			{"id":"sub_1","object":"subscription","customer":"cus_1","status":"active","cancel_at_period_end":true,
			 "items":{"object":"list","data":[{"id":"si_1","object":"subscription_item","current_period_end":1719592000,
			   "price":{"id":"price_1","object":"price","lookup_key":"rev1_tier2","nickname":"REV1 Standard","unit_amount":1900,"currency":"usd","recurring":{"interval":"month"}}}]}}
		]}`))
	})

	subs, err := c.ListCustomerSubscriptions(context.Background(), "cus_1", 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	s := subs[0]
	require.Equal(t, "sub_1", s.ID)
	require.Equal(t, "rev1_tier2", s.PlanID)
	require.Equal(t, "REV1 Standard", s.PlanName)
	require.Equal(t, "active", s.Status)
	require.EqualValues(t, 1900, s.Amount)
	require.Equal(t, "usd", s.Currency)
	require.Equal(t, "month", s.Interval)
	require.Equal(t, int64(1719592000), s.CurrentPeriodEnd.Unix())
	require.True(t, s.CancelAtPeriodEnd)
}

func TestListPaymentHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoices", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","url":"/v1/invoices","has_more":false,"data":[
			{"id":"in_2","object":"invoice","number":"A-2","amount_paid":1900,"currency":"usd","status":"paid","created":1717000000,"hosted_invoice_url":"https://invoice.stripe.com/i/2"},
			{"id":"in_1","object":"invoice","number":"A-1","amount_paid":0,"currency":"usd","status":"open","created":1716000000}
		]}`))
	})

	payments, err := c.ListPaymentHistory(context.Background(), "cus_1", 2)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, "in_2", payments[0].ID)
	require.EqualValues(t, 1900, payments[0].Amount)
	require.Equal(t, "paid", payments[0].Status)
	require.Equal(t, "https://invoice.stripe.com/i/2", payments[0].ReceiptURL)
	require.Equal(t, int64(1717000000), payments[0].Created.Unix())
	require.Equal(t, "open", payments[1].Status)
}

func TestListPaymentHistory_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	})

	_, err := c.ListPaymentHistory(context.Background(), "cus_1", 5)
	require.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, MaxListLimit, clampLimit(0))
	require.Equal(t, MaxListLimit, clampLimit(1000))
	require.Equal(t, 7, clampLimit(7))
}
