package model

// Action types shared by computer and mobile sandboxes.
const (
	ActionTypeScreenshot   = "screenshot"
	ActionTypeWait         = "wait"
	ActionTypeFinished     = "finished"
	ActionTypeFailed       = "failed"
	ActionTypeUserTakeover = "client:user-takeover"
)

// ScreenshotAction takes a screenshot of the sandbox screen.
type ScreenshotAction struct {
	ActionBase
}

func (ScreenshotAction) Type() string { return ActionTypeScreenshot }

func (a ScreenshotAction) MarshalJSON() ([]byte, error) {
	type plain ScreenshotAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// WaitAction waits for a duration in milliseconds.
type WaitAction struct {
	ActionBase
	Duration int `json:"duration"`
}

func (WaitAction) Type() string { return ActionTypeWait }

func (a WaitAction) MarshalJSON() ([]byte, error) {
	type plain WaitAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// FinishedAction signals that the task has been completed.
type FinishedAction struct {
	ActionBase
	Message string `json:"message,omitempty"`
}

func (FinishedAction) Type() string { return ActionTypeFinished }

func (a FinishedAction) MarshalJSON() ([]byte, error) {
	type plain FinishedAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// FailedAction signals that the task could not be completed.
type FailedAction struct {
	ActionBase
	Message string `json:"message,omitempty"`
}

func (FailedAction) Type() string { return ActionTypeFailed }

func (a FailedAction) MarshalJSON() ([]byte, error) {
	type plain FailedAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// UserTakeoverAction hands the sandbox control over to a human user.
type UserTakeoverAction struct {
	ActionBase
}

func (UserTakeoverAction) Type() string { return ActionTypeUserTakeover }

func (a UserTakeoverAction) MarshalJSON() ([]byte, error) {
	type plain UserTakeoverAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}
