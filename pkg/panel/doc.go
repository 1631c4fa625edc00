// Package panel holds the logic of the subscription status panel shown for an
// account or an organization.
//
// A Deriver turns an Owner and its billing.Subscription into Facts: plan name,
// quota tiles with warning flags, yearly cost, status badge and which control
// to show. It is pure and takes the evaluation instant explicitly.
//
// A tap on the control goes through Panel.Edit:
//
//	tap -> Runner guard -> Chooser (prompt or dialog) -> Dispatcher -> Updater
//
// The Runner admits one action at a time and cycles its indicator through
// idle, busy, success or fail and back to idle after Config.FeedbackInterval.
// Taps arriving while it is not idle are dropped. Mutation failures are shown
// through the Alerter using the error's user message when it has one.
//
// The panel never writes to the subscription. Updated records reach it on the
// next render through whoever owns the Owner values.
package panel
