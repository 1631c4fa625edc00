package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/config"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/redis"
	"github.com/dmitrymomot/billingpanel/svc/directory"
)

func testConfig() appConfig {
	return appConfig{
		Env:             logger.EnvDevelopment,
		ServiceName:     "billing-panel",
		Provider:        providerNone,
		UpdatesChannel:  "test:billing",
		BasePath:        "/billing",
		DefaultLanguage: "en",
		DemoData:        true,
		Panel:           panel.DefaultConfig(),
		Redis:           redis.Config{RetryAttempts: 1, ConnectTimeout: time.Second},
	}
}

func newTestApp(t *testing.T, cfg appConfig) *app {
	t.Helper()
	a, err := newApp(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "billing-panel "+Version+"\n", out.String())
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	p, err := newProvider(cfg)
	require.NoError(t, err)
	assert.Nil(t, p)

	cfg.Provider = providerPaddle
	_, err = newProvider(cfg)
	assert.ErrorIs(t, err, billing.ErrMissingAPIKey)

	cfg.Provider = providerStripe
	cfg.Stripe.APIKey = "sk_test_123"
	p, err = newProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &billing.StripeProvider{}, p)

	cfg.Provider = "braintree"
	_, err = newProvider(cfg)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testConfig())
	h := a.routes()

	rec := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = get(h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	rec = get(h, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/billing/", rec.Header().Get("Location"))

	rec = get(h, "/billing/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Corp")
	assert.Contains(t, rec.Body.String(), "grace@example.com")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = get(h, "/billing/"+demoPastDueID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment Failed")

	rec = get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	a.close()
	rec = get(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRedisFeedWiring(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.ConnectionURL = "redis://" + srv.Addr()

	a := newTestApp(t, cfg)
	require.NoError(t, a.connectRedis(context.Background()))
	require.NotNil(t, a.feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.feed.Run(ctx) }()
	require.Eventually(t, func() bool {
		return srv.PubSubNumSub(cfg.UpdatesChannel)[cfg.UpdatesChannel] == 1
	}, time.Second, 5*time.Millisecond)

	srv.Publish(cfg.UpdatesChannel, `{"owner_id":"`+demoFreeID.String()+`","subscription":{"id":"sub_new","plan":{"id":"premium","name":"Premium","type":"premium","cost":3600},"members":1,"status":"active"}}`)

	assert.Eventually(t, func() bool {
		owner, err := a.dir.Owner(context.Background(), demoFreeID)
		return err == nil && panel.SubscriptionOf(owner) != nil && panel.SubscriptionOf(owner).Plan.Name == "Premium"
	}, time.Second, 5*time.Millisecond)

	rec := get(a.routes(), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.Close()
	rec = get(a.routes(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadSubscription(t *testing.T) {
	t.Parallel()

	sub, err := readSubscription(strings.NewReader(" null\n"))
	require.NoError(t, err)
	assert.Nil(t, sub)

	sub, err = readSubscription(strings.NewReader(`{"id":"sub_1","status":"past_due"}`))
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPastDue, sub.Status)

	_, err = readSubscription(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyRecord)

	_, err = readSubscription(strings.NewReader("{"))
	assert.Error(t, err)
}

// TestPublishCmd reads the environment, so it does not run in parallel.
func TestPublishCmd(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+srv.Addr())
	t.Setenv("BILLING_UPDATES_CHANNEL", "test:publish")
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sub := client.Subscribe(context.Background(), "test:publish")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`{"id":"sub_1","status":"canceled"}`))
	cmd.SetArgs([]string{"publish", demoOrgID.String()})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "published update for "+demoOrgID.String())

	select {
	case msg := <-sub.Channel():
		var u directory.Update
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &u))
		assert.Equal(t, demoOrgID, u.OwnerID)
		require.NotNil(t, u.Subscription)
		assert.Equal(t, "sub_1", u.Subscription.ID)
		assert.Equal(t, billing.StatusCanceled, u.Subscription.Status)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}
