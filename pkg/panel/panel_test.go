package panel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

type fixture struct {
	panel    *panel.Panel
	updater  *stubUpdater
	prompter *stubPrompter
	alerter  *recordingAlerter
	dialogs  *mockDialogs
	sched    *manualScheduler
	metrics  *panel.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		updater:  &stubUpdater{},
		prompter: &stubPrompter{ok: true},
		alerter:  &recordingAlerter{},
		dialogs:  &mockDialogs{},
		sched:    &manualScheduler{},
	}
	var err error
	f.metrics, err = panel.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	f.panel, err = panel.New(panel.Deps{
		Updater:  f.updater,
		Prompter: f.prompter,
		Alerter:  f.alerter,
		Dialogs:  f.dialogs,
	}, panel.WithScheduler(f.sched), panel.WithMetrics(f.metrics))
	require.NoError(t, err)
	return f
}

func (f *fixture) actions(kind panel.ActionKind, outcome string) float64 {
	return testutil.ToFloat64(f.metrics.Actions().WithLabelValues(kind.String(), outcome))
}

func TestPanel_New(t *testing.T) {
	t.Parallel()

	full := panel.Deps{
		Updater:  &stubUpdater{},
		Prompter: &stubPrompter{},
		Alerter:  &recordingAlerter{},
		Dialogs:  &mockDialogs{},
	}

	tests := []struct {
		name   string
		modify func(*panel.Deps)
		want   error
	}{
		{"missing updater", func(d *panel.Deps) { d.Updater = nil }, panel.ErrNilUpdater},
		{"missing prompter", func(d *panel.Deps) { d.Prompter = nil }, panel.ErrNilPrompter},
		{"missing alerter", func(d *panel.Deps) { d.Alerter = nil }, panel.ErrNilAlerter},
		{"missing dialogs", func(d *panel.Deps) { d.Dialogs = nil }, panel.ErrNilDialogs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := full
			tt.modify(&deps)
			_, err := panel.New(deps)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPanel_EditFreeAccountOpensPremium(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.dialogs.On("ShowPremium", mock.Anything).Return(nil).Once()

	res, err := f.panel.Edit(context.Background(), newAccount(nil))
	require.NoError(t, err)
	assert.Equal(t, panel.ActionGoPremium, res.Action.Kind)
	assert.Empty(t, f.prompter.Prompts())
	assert.Empty(t, f.updater.Calls())
	assert.Equal(t, panel.StateIdle, f.panel.State())
	f.dialogs.AssertExpectations(t)
	assert.InDelta(t, 1, f.actions(panel.ActionGoPremium, panel.OutcomeSucceeded), 0)
}

func TestPanel_EditOrgWithoutSubscriptionOpensPlanDialog(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	org := newOrg(nil)
	f.dialogs.On("ShowUpdatePlan", mock.Anything, org).Return(nil).Once()

	res, err := f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	assert.Equal(t, panel.ActionUpdatePlan, res.Action.Kind)
	assert.Empty(t, f.prompter.Prompts())
	f.dialogs.AssertExpectations(t)
}

func TestPanel_EditUpdatePlanFromPrompt(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.prompter.index = 1
	org := newOrg(paidSubscription())
	f.dialogs.On("ShowUpdatePlan", mock.Anything, org).Return(nil).Once()

	res, err := f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	assert.Equal(t, panel.ActionUpdatePlan, res.Action.Kind)
	assert.Empty(t, f.updater.Calls())
	f.dialogs.AssertExpectations(t)
}

func TestPanel_CancelResumeRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	org := newOrg(paidSubscription())

	res, err := f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	assert.Equal(t, panel.ActionCancel, res.Action.Kind)
	assert.True(t, res.Accepted)
	assert.Equal(t, panel.StateSuccess, f.panel.State())
	f.sched.Flush()
	assert.Equal(t, panel.StateIdle, f.panel.State())

	// the owning model refreshes the record after a successful mutation
	org.Billing.Subscription.WillCancel = true

	res, err = f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	assert.Equal(t, panel.ActionResume, res.Action.Kind)
	f.sched.Flush()

	assert.Equal(t, panel.StateIdle, f.panel.State())
	assert.Empty(t, f.alerter.Alerts())
	assert.Equal(t, []billing.UpdateParams{
		{OwnerID: org.ID, OwnerKind: billing.OwnerOrg, Cancel: true},
		{OwnerID: org.ID, OwnerKind: billing.OwnerOrg, Cancel: false},
	}, f.updater.Calls())
	assert.InDelta(t, 1, f.actions(panel.ActionCancel, panel.OutcomeSucceeded), 0)
	assert.InDelta(t, 1, f.actions(panel.ActionResume, panel.OutcomeSucceeded), 0)

	// the panel itself never touches the subscription
	assert.True(t, org.Billing.Subscription.WillCancel)
}

func TestPanel_CardDeclined(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.updater.err = errors.New("card declined")

	var states []panel.State
	stop := f.panel.Watch(func(s panel.State) { states = append(states, s) })
	defer stop()

	res, err := f.panel.Edit(context.Background(), newAccount(paidSubscription()))
	require.NoError(t, err)
	assert.EqualError(t, res.Err, "card declined")
	assert.Equal(t, panel.StateFail, f.panel.State())

	alerts := f.alerter.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "card declined", alerts[0].Message)

	f.sched.Flush()
	assert.Equal(t, panel.StateIdle, f.panel.State())
	assert.Equal(t, []panel.State{panel.StateBusy, panel.StateFail, panel.StateIdle}, states)
	assert.InDelta(t, 1, f.actions(panel.ActionCancel, panel.OutcomeFailed), 0)
}

func TestPanel_MutationOutlivesCaller(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var mutationErr error
	updater := panel.UpdaterFunc(func(ctx context.Context, _ billing.UpdateParams) error {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
		mutationErr = ctx.Err()
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return mutationErr
	})

	sched := &manualScheduler{}
	cfg := panel.DefaultConfig()
	cfg.MutationTimeout = time.Minute
	p, err := panel.New(panel.Deps{
		Updater:  updater,
		Prompter: &stubPrompter{ok: true},
		Alerter:  &recordingAlerter{},
		Dialogs:  &mockDialogs{},
	}, panel.WithScheduler(sched), panel.WithConfig(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan panel.EditResult, 1)
	go func() {
		res, err := p.Edit(ctx, newOrg(paidSubscription()))
		assert.NoError(t, err)
		done <- res
	}()

	<-started
	cancel()
	// the caller is gone, the mutation keeps running
	assert.Equal(t, panel.StateBusy, p.State())
	close(release)

	select {
	case res := <-done:
		assert.True(t, res.Accepted)
		assert.NoError(t, res.Err)
	case <-time.After(time.Second):
		t.Fatal("edit did not finish")
	}
	assert.NoError(t, mutationErr)
	assert.Equal(t, panel.StateSuccess, p.State())
}

func TestPanel_MutationTimeout(t *testing.T) {
	t.Parallel()

	updater := panel.UpdaterFunc(func(ctx context.Context, _ billing.UpdateParams) error {
		<-ctx.Done()
		return ctx.Err()
	})
	alerter := &recordingAlerter{}
	cfg := panel.DefaultConfig()
	cfg.MutationTimeout = 10 * time.Millisecond
	p, err := panel.New(panel.Deps{
		Updater:  updater,
		Prompter: &stubPrompter{ok: true},
		Alerter:  alerter,
		Dialogs:  &mockDialogs{},
	}, panel.WithScheduler(&manualScheduler{}), panel.WithConfig(cfg))
	require.NoError(t, err)

	res, err := p.Edit(context.Background(), newAccount(paidSubscription()))
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, panel.StateFail, p.State())
	assert.Len(t, alerter.Alerts(), 1)
}

func TestPanel_DismissedPromptIsNoop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.prompter.ok = false

	res, err := f.panel.Edit(context.Background(), newOrg(paidSubscription()))
	require.NoError(t, err)
	assert.Equal(t, panel.ActionNone, res.Action.Kind)
	assert.Empty(t, f.updater.Calls())
	assert.Empty(t, f.alerter.Alerts())
	assert.Equal(t, panel.StateIdle, f.panel.State())
}

func TestPanel_EditDroppedWhileNotIdle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	org := newOrg(paidSubscription())

	_, err := f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	require.Equal(t, panel.StateSuccess, f.panel.State())

	res, err := f.panel.Edit(context.Background(), org)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Len(t, f.prompter.Prompts(), 1)
	assert.Len(t, f.updater.Calls(), 1)
	assert.InDelta(t, 1, f.actions(panel.ActionNone, panel.OutcomeDropped), 0)
}

func TestPanel_EditNilOwner(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	_, err := f.panel.Edit(context.Background(), nil)
	assert.ErrorIs(t, err, panel.ErrNilOwner)
}

func TestPanel_Facts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sub := paidSubscription()
	sub.Status = billing.StatusPastDue
	facts := f.panel.Facts(newOrg(sub), testNow)
	assert.Equal(t, "Team", facts.PlanName)
	assert.Equal(t, panel.BadgePaymentFailed, facts.Status.Kind)
}

func TestDispatcher_SetCancel(t *testing.T) {
	t.Parallel()

	declined := errors.New("card declined")
	updater := &stubUpdater{err: declined}
	d, err := panel.NewDispatcher(updater)
	require.NoError(t, err)

	acc := newAccount(paidSubscription())
	err = d.SetCancel(context.Background(), acc, true)
	assert.Same(t, declined, err)
	assert.Equal(t, []billing.UpdateParams{{OwnerID: acc.ID, OwnerKind: billing.OwnerAccount, Cancel: true}}, updater.Calls())
	assert.False(t, acc.Billing.Subscription.WillCancel)

	assert.ErrorIs(t, d.SetCancel(context.Background(), nil, true), panel.ErrNilOwner)

	_, err = panel.NewDispatcher(nil)
	assert.ErrorIs(t, err, panel.ErrNilUpdater)
}
