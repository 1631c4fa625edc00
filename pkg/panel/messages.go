package panel

import "strings"

// Localizer turns a message key and key/value arguments into display text.
// *i18n.Printer satisfies it.
type Localizer interface {
	T(key string, args ...string) string
}

// Message keys used by the panel.
const (
	MsgResumeSubscription = "billing.resume_subscription"
	MsgCancelSubscription = "billing.cancel_subscription"
	MsgUpdatePlan         = "billing.update_plan"
	MsgGoPremium          = "billing.go_premium"
	MsgUnlimited          = "billing.unlimited"
	MsgQuotaUsage         = "billing.quota_usage"
	MsgStorageUsage       = "billing.storage_usage"
	MsgCostPerYear        = "billing.cost_per_year"
	MsgStatusCanceling    = "billing.status.canceling"
	MsgStatusCanceled     = "billing.status.canceled"
	MsgStatusPaymentFail  = "billing.status.payment_failed"
	MsgStatusTrialing     = "billing.status.trialing"
	MsgGenericError       = "billing.error_generic"
)

// EnglishMessages is the built-in catalog used when no Localizer is configured.
var EnglishMessages = map[string]string{
	MsgResumeSubscription: "Resume Subscription",
	MsgCancelSubscription: "Cancel Subscription",
	MsgUpdatePlan:         "Update Plan",
	MsgGoPremium:          "Go Premium",
	MsgUnlimited:          "Unlimited",
	MsgQuotaUsage:         "%{used} / %{limit}",
	MsgStorageUsage:       "%{used} / %{limit} GB",
	MsgCostPerYear:        "%{amount} / Year",
	MsgStatusCanceling:    "Canceled (%{days} days left)",
	MsgStatusCanceled:     "Canceled",
	MsgStatusPaymentFail:  "Payment Failed",
	MsgStatusTrialing:     "Trialing (%{days} days left)",
	MsgGenericError:       "Something went wrong. Please try again later!",
}

type catalogLocalizer map[string]string

func (c catalogLocalizer) T(key string, args ...string) string {
	tmpl, ok := c[key]
	if !ok {
		tmpl = key
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "%{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// DefaultLocalizer returns the built-in English localizer.
func DefaultLocalizer() Localizer {
	return catalogLocalizer(EnglishMessages)
}
