package model

// Mobile action types.
const (
	ActionTypeMobileTap        = "mobile:tap"
	ActionTypeMobileDoubleTap  = "mobile:doubleTap"
	ActionTypeMobileSwipe      = "mobile:swipe"
	ActionTypeMobileType       = "mobile:type"
	ActionTypeMobileHotkey     = "mobile:hotkey"
	ActionTypeMobileHome       = "mobile:home"
	ActionTypeMobileBack       = "mobile:back"
	ActionTypeMobileScreenshot = "mobile:screenshot"
	ActionTypeMobileWait       = "mobile:wait"
	ActionTypeMobileFinished   = "mobile:finished"
	ActionTypeMobileFailed     = "mobile:failed"
)

// MobileTapAction taps a screen position.
type MobileTapAction struct {
	ActionBase
	X Length `json:"x"`
	Y Length `json:"y"`
}

func (MobileTapAction) Type() string { return ActionTypeMobileTap }

func (a MobileTapAction) MarshalJSON() ([]byte, error) {
	type plain MobileTapAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileDoubleTapAction double taps a screen position.
type MobileDoubleTapAction struct {
	ActionBase
	X Length `json:"x"`
	Y Length `json:"y"`
}

func (MobileDoubleTapAction) Type() string { return ActionTypeMobileDoubleTap }

func (a MobileDoubleTapAction) MarshalJSON() ([]byte, error) {
	type plain MobileDoubleTapAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileSwipeAction swipes from a start to an end position in Duration milliseconds.
type MobileSwipeAction struct {
	ActionBase
	StartX   Length `json:"startX"`
	StartY   Length `json:"startY"`
	EndX     Length `json:"endX"`
	EndY     Length `json:"endY"`
	Duration int    `json:"duration"`
}

func (MobileSwipeAction) Type() string { return ActionTypeMobileSwipe }

func (a MobileSwipeAction) MarshalJSON() ([]byte, error) {
	type plain MobileSwipeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileTypeAction types text on the focused input.
type MobileTypeAction struct {
	ActionBase
	Content string `json:"content"`
}

func (MobileTypeAction) Type() string { return ActionTypeMobileType }

func (a MobileTypeAction) MarshalJSON() ([]byte, error) {
	type plain MobileTypeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileHotkeyAction presses a device key.
type MobileHotkeyAction struct {
	ActionBase
	Key string `json:"key"`
}

func (MobileHotkeyAction) Type() string { return ActionTypeMobileHotkey }

func (a MobileHotkeyAction) MarshalJSON() ([]byte, error) {
	type plain MobileHotkeyAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileHomeAction goes to the home screen.
type MobileHomeAction struct {
	ActionBase
}

func (MobileHomeAction) Type() string { return ActionTypeMobileHome }

func (a MobileHomeAction) MarshalJSON() ([]byte, error) {
	type plain MobileHomeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileBackAction presses the back button.
type MobileBackAction struct {
	ActionBase
}

func (MobileBackAction) Type() string { return ActionTypeMobileBack }

func (a MobileBackAction) MarshalJSON() ([]byte, error) {
	type plain MobileBackAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileScreenshotAction takes a screenshot of the device.
type MobileScreenshotAction struct {
	ActionBase
}

func (MobileScreenshotAction) Type() string { return ActionTypeMobileScreenshot }

func (a MobileScreenshotAction) MarshalJSON() ([]byte, error) {
	type plain MobileScreenshotAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileWaitAction waits for a duration in milliseconds.
type MobileWaitAction struct {
	ActionBase
	Duration int `json:"duration"`
}

func (MobileWaitAction) Type() string { return ActionTypeMobileWait }

func (a MobileWaitAction) MarshalJSON() ([]byte, error) {
	type plain MobileWaitAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileFinishedAction signals that the mobile task has been completed.
type MobileFinishedAction struct {
	ActionBase
	Message string `json:"message,omitempty"`
}

func (MobileFinishedAction) Type() string { return ActionTypeMobileFinished }

func (a MobileFinishedAction) MarshalJSON() ([]byte, error) {
	type plain MobileFinishedAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MobileFailedAction signals that the mobile task could not be completed.
type MobileFailedAction struct {
	ActionBase
	Message string `json:"message,omitempty"`
}

func (MobileFailedAction) Type() string { return ActionTypeMobileFailed }

func (a MobileFailedAction) MarshalJSON() ([]byte, error) {
	type plain MobileFailedAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}
