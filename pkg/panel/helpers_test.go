package panel_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

// manualScheduler holds scheduled functions until Flush is called.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledFunc
}

type scheduledFunc struct {
	delay time.Duration
	fn    func()
	done  bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf := &scheduledFunc{delay: d, fn: f}
	s.pending = append(s.pending, sf)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sf.done {
			return false
		}
		sf.done = true
		return true
	}
}

// Flush runs every pending function and returns how many ran.
func (s *manualScheduler) Flush() int {
	s.mu.Lock()
	var due []*scheduledFunc
	for _, sf := range s.pending {
		if !sf.done {
			sf.done = true
			due = append(due, sf)
		}
	}
	s.pending = nil
	s.mu.Unlock()

	for _, sf := range due {
		sf.fn()
	}
	return len(due)
}

func (s *manualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.pending))
	for _, sf := range s.pending {
		out = append(out, sf.delay)
	}
	return out
}

type stubUpdater struct {
	mu    sync.Mutex
	calls []billing.UpdateParams
	err   error
}

func (u *stubUpdater) UpdateBilling(_ context.Context, params billing.UpdateParams) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, params)
	return u.err
}

func (u *stubUpdater) Calls() []billing.UpdateParams {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]billing.UpdateParams(nil), u.calls...)
}

type stubPrompter struct {
	mu      sync.Mutex
	prompts [][]string
	index   int
	ok      bool
	err     error
}

func (p *stubPrompter) Choose(_ context.Context, _ string, options []string) (int, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, options)
	return p.index, p.ok, p.err
}

func (p *stubPrompter) Prompts() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts
}

type alert struct {
	Message string
	Kind    panel.AlertKind
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []alert
}

func (a *recordingAlerter) Alert(_ context.Context, message string, kind panel.AlertKind) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert{Message: message, Kind: kind})
	return nil
}

func (a *recordingAlerter) Alerts() []alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]alert(nil), a.alerts...)
}

type mockDialogs struct {
	mock.Mock
}

func (m *mockDialogs) ShowUpdatePlan(ctx context.Context, org *panel.Org) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockDialogs) ShowPremium(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}

func paidSubscription() *billing.Subscription {
	return &billing.Subscription{
		ID:      "sub_1",
		Plan:    billing.Plan{ID: "team", Name: "Team", Type: billing.PlanTypeTeam, Cost: 499},
		Members: 3,
		Status:  billing.StatusActive,
	}
}

func newOrg(sub *billing.Subscription) *panel.Org {
	o := &panel.Org{
		ID:    uuid.New(),
		Name:  "Acme",
		Quota: billing.Quota{Members: 5, Groups: 3, Vaults: 10, Storage: 1},
	}
	if sub != nil {
		o.Billing = &billing.Billing{Subscription: sub}
	}
	return o
}

func newAccount(sub *billing.Subscription) *panel.Account {
	a := &panel.Account{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Quota: billing.Quota{Items: 50, Storage: 1},
	}
	if sub != nil {
		a.Billing = &billing.Billing{Subscription: sub}
	}
	return a
}
