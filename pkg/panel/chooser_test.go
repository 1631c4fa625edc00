package panel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

func TestChooser_BypassesPrompt(t *testing.T) {
	t.Parallel()

	free := &billing.Subscription{Plan: billing.FreePlan(), Status: billing.StatusActive}

	tests := []struct {
		name  string
		owner panel.Owner
		want  panel.ActionKind
	}{
		{"account without subscription", newAccount(nil), panel.ActionGoPremium},
		{"account on free plan", newAccount(free), panel.ActionGoPremium},
		{"org without subscription", newOrg(nil), panel.ActionUpdatePlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prompter := &stubPrompter{}
			c, err := panel.NewChooser(prompter)
			require.NoError(t, err)

			action, err := c.Choose(context.Background(), tt.owner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, action.Kind)
			assert.Empty(t, prompter.Prompts())
			assert.Nil(t, c.Options(tt.owner))
		})
	}

	t.Run("org action carries the org", func(t *testing.T) {
		t.Parallel()
		org := newOrg(nil)
		c, err := panel.NewChooser(&stubPrompter{})
		require.NoError(t, err)

		action, err := c.Choose(context.Background(), org)
		require.NoError(t, err)
		assert.Same(t, org, action.Org)
	})
}

func TestChooser_Options(t *testing.T) {
	t.Parallel()

	c, err := panel.NewChooser(&stubPrompter{})
	require.NoError(t, err)

	active := paidSubscription()
	assert.Equal(t, []string{"Cancel Subscription", "Update Plan"}, c.Options(newOrg(active)))
	assert.Equal(t, []string{"Cancel Subscription"}, c.Options(newAccount(active)))

	willCancel := paidSubscription()
	willCancel.WillCancel = true
	assert.Equal(t, []string{"Resume Subscription", "Update Plan"}, c.Options(newOrg(willCancel)))

	canceled := paidSubscription()
	canceled.Status = billing.StatusCanceled
	assert.Equal(t, []string{"Resume Subscription"}, c.Options(newAccount(canceled)))

	freeOrg := &billing.Subscription{Plan: billing.FreePlan()}
	assert.Len(t, c.Options(newOrg(freeOrg)), 2)
}

func TestChooser_Prompted(t *testing.T) {
	t.Parallel()

	canceled := paidSubscription()
	canceled.WillCancel = true

	tests := []struct {
		name  string
		owner panel.Owner
		index int
		ok    bool
		want  panel.ActionKind
	}{
		{"org cancel", newOrg(paidSubscription()), 0, true, panel.ActionCancel},
		{"org resume", newOrg(canceled), 0, true, panel.ActionResume},
		{"org update plan", newOrg(paidSubscription()), 1, true, panel.ActionUpdatePlan},
		{"account cancel", newAccount(paidSubscription()), 0, true, panel.ActionCancel},
		{"account resume", newAccount(canceled), 0, true, panel.ActionResume},
		{"dismissed", newOrg(paidSubscription()), 0, false, panel.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prompter := &stubPrompter{index: tt.index, ok: tt.ok}
			c, err := panel.NewChooser(prompter)
			require.NoError(t, err)

			action, err := c.Choose(context.Background(), tt.owner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, action.Kind)
			require.Len(t, prompter.Prompts(), 1)
			assert.Equal(t, c.Options(tt.owner), prompter.Prompts()[0])
		})
	}
}

func TestChooser_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil prompter", func(t *testing.T) {
		t.Parallel()
		_, err := panel.NewChooser(nil)
		assert.ErrorIs(t, err, panel.ErrNilPrompter)
	})

	t.Run("nil owner", func(t *testing.T) {
		t.Parallel()
		c, err := panel.NewChooser(&stubPrompter{})
		require.NoError(t, err)
		_, err = c.Choose(context.Background(), nil)
		assert.ErrorIs(t, err, panel.ErrNilOwner)
	})

	t.Run("prompt failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("stream closed")
		c, err := panel.NewChooser(&stubPrompter{err: boom})
		require.NoError(t, err)
		_, err = c.Choose(context.Background(), newOrg(paidSubscription()))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("index out of range", func(t *testing.T) {
		t.Parallel()
		c, err := panel.NewChooser(&stubPrompter{index: 1, ok: true})
		require.NoError(t, err)
		_, err = c.Choose(context.Background(), newAccount(paidSubscription()))
		assert.ErrorIs(t, err, panel.ErrInvalidIndex)
	})
}

func TestChooser_Metrics(t *testing.T) {
	t.Parallel()

	metrics, err := panel.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	chosen, err := panel.NewChooser(&stubPrompter{ok: true}, panel.WithMetrics(metrics))
	require.NoError(t, err)
	dismissed, err := panel.NewChooser(&stubPrompter{}, panel.WithMetrics(metrics))
	require.NoError(t, err)

	org := newOrg(paidSubscription())
	_, _ = chosen.Choose(context.Background(), org)
	_, _ = chosen.Choose(context.Background(), org)
	_, _ = dismissed.Choose(context.Background(), org)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Prompts().WithLabelValues(panel.PromptChosen)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Prompts().WithLabelValues(panel.PromptDismissed)), 0)
}
