package panel

import "errors"

var (
	ErrNilOwner     = errors.New("panel: owner is required")
	ErrNilUpdater   = errors.New("panel: billing updater is required")
	ErrNilPrompter  = errors.New("panel: prompter is required")
	ErrNilAlerter   = errors.New("panel: alerter is required")
	ErrNilDialogs   = errors.New("panel: dialogs are required")
	ErrInvalidIndex = errors.New("panel: prompt returned an out of range option")

	errRunnerClosed = errors.New("panel: runner is closed")
)
