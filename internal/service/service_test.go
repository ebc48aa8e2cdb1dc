package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/billing"
	"github.com/mmynk/roomshare/internal/ledger"
	"github.com/mmynk/roomshare/internal/metrics"
	"github.com/mmynk/roomshare/internal/middleware"
	"github.com/mmynk/roomshare/internal/models"
	"github.com/mmynk/roomshare/internal/notify"
	"github.com/mmynk/roomshare/internal/payments"
	"github.com/mmynk/roomshare/internal/property"
)

var testNow = time.Date(2025, time.February, 12, 9, 0, 0, 0, time.UTC)

// recordingNotifier collects events in memory.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

type testEnv struct {
	url      string
	core     *Core
	notifier *recordingNotifier
	registry *prometheus.Registry
	primary  *models.Occupant
}

// setupTestServer creates a test server with a fresh in-memory core.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return testNow }

	shares := ledger.New(decimal.NewFromInt(2200), ledger.WithClock(clock), ledger.WithLogger(logger))
	primary, err := shares.SetPrimary("Master Tenant", "master@example.com")
	if err != nil {
		t.Fatalf("failed to set primary: %v", err)
	}
	bills := billing.NewLedger(logger)
	notifier := &recordingNotifier{}
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	core := &Core{
		Shares:    shares,
		Bills:     bills,
		Generator: billing.NewGenerator(shares, bills, billing.WithGeneratorLogger(logger)),
		Payments:  payments.New(shares, payments.WithClock(clock), payments.WithLogger(logger)),
		Property:  property.NewStore(models.PropertySettings{UnitNo: "12B", Address: "1 Main St"},
			property.WithClock(clock), property.WithLogger(logger)),
		Metrics:   m,
		Notifier:  notifier,
		Currency:  Currency{Code: "USD", Symbol: "$", Name: "US Dollar"},
		Logger:    logger,
		Now:       clock,
	}

	mux := http.NewServeMux()
	Register(mux, core, connect.WithInterceptors(
		middleware.ActorInterceptor(),
		middleware.LoggingInterceptor(logger),
		m.Interceptor(),
		ValidationInterceptor(),
	))
	server := httptest.NewServer(mux)

	return &testEnv{url: server.URL, core: core, notifier: notifier, registry: registry, primary: primary}, server.Close
}

// call invokes one procedure, sending actor in the X-Occupant-Id header when set.
func call[Req, Res any](env *testEnv, procedure, actor string, msg *Req) (*Res, error) {
	client := connect.NewClient[Req, Res](http.DefaultClient, env.url+procedure, WithJSONCodec())
	req := connect.NewRequest(msg)
	if actor != "" {
		req.Header().Set(middleware.ActorHeader, actor)
	}
	resp, err := client.CallUnary(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeShare(rent, utilities string) Share {
	return Share{RentAmount: dec(rent), UtilitiesPercentage: dec(utilities), IsActive: true}
}

func addOccupant(t *testing.T, env *testEnv, name, email string, share Share) Occupant {
	t.Helper()
	resp, err := call[AddOccupantRequest, AddOccupantResponse](env, OccupantServiceAddOccupantProcedure, "",
		&AddOccupantRequest{Name: name, Email: email, Share: share})
	if err != nil {
		t.Fatalf("AddOccupant(%s) failed: %v", name, err)
	}
	return resp.Occupant
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got)
	}
}
