package model

import "fmt"

// Touch, Android and OS action types.
const (
	ActionTypeTouchTap         = "touch:tap"
	ActionTypeTouchDrag        = "touch:drag"
	ActionTypeTouchSwipe       = "touch:swipe"
	ActionTypeTouchLongPress   = "touch:longPress"
	ActionTypeAndroidBack      = "android:back"
	ActionTypeAndroidHome      = "android:home"
	ActionTypeOSStartApp       = "os:startApp"
	ActionTypeOSStartAppByName = "os:startAppByName"
	ActionTypeOSCloseApp       = "os:closeApp"
	ActionTypeOSListApps       = "os:listApps"
)

// SwipeDirection is the direction of a touch swipe.
type SwipeDirection string

const (
	SwipeDirectionUp    SwipeDirection = "up"
	SwipeDirectionDown  SwipeDirection = "down"
	SwipeDirectionLeft  SwipeDirection = "left"
	SwipeDirectionRight SwipeDirection = "right"
)

func (d SwipeDirection) validate() error {
	switch d {
	case SwipeDirectionUp, SwipeDirectionDown, SwipeDirectionLeft, SwipeDirectionRight:
		return nil
	default:
		return fmt.Errorf("direction must be up, down, left or right, got %q", string(d))
	}
}

// TouchTapAction taps a screen position.
type TouchTapAction struct {
	ActionBase
	X Length `json:"x"`
	Y Length `json:"y"`
}

func (TouchTapAction) Type() string { return ActionTypeTouchTap }

func (a TouchTapAction) MarshalJSON() ([]byte, error) {
	type plain TouchTapAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// TouchDragAction drags from a start to an end position.
type TouchDragAction struct {
	ActionBase
	StartX Length `json:"startX"`
	StartY Length `json:"startY"`
	EndX   Length `json:"endX"`
	EndY   Length `json:"endY"`
}

func (TouchDragAction) Type() string { return ActionTypeTouchDrag }

func (a TouchDragAction) MarshalJSON() ([]byte, error) {
	type plain TouchDragAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// TouchSwipeAction swipes from a position in a direction for a distance.
type TouchSwipeAction struct {
	ActionBase
	X         Length         `json:"x"`
	Y         Length         `json:"y"`
	Direction SwipeDirection `json:"direction"`
	Distance  Length         `json:"distance"`
}

func (TouchSwipeAction) Type() string { return ActionTypeTouchSwipe }

func (a TouchSwipeAction) MarshalJSON() ([]byte, error) {
	type plain TouchSwipeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

func (a *TouchSwipeAction) validate() error {
	if err := a.Direction.validate(); err != nil {
		return &InvalidActionPayloadError{ActionType: a.Type(), Fields: []string{"direction"}, Reason: err.Error()}
	}
	return nil
}

// TouchLongPressAction presses a position for Duration milliseconds.
type TouchLongPressAction struct {
	ActionBase
	X        Length `json:"x"`
	Y        Length `json:"y"`
	Duration int    `json:"duration"`
}

func (TouchLongPressAction) Type() string { return ActionTypeTouchLongPress }

func (a TouchLongPressAction) MarshalJSON() ([]byte, error) {
	type plain TouchLongPressAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// AndroidBackAction presses the Android back button.
type AndroidBackAction struct {
	ActionBase
}

func (AndroidBackAction) Type() string { return ActionTypeAndroidBack }

func (a AndroidBackAction) MarshalJSON() ([]byte, error) {
	type plain AndroidBackAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// AndroidHomeAction presses the Android home button.
type AndroidHomeAction struct {
	ActionBase
}

func (AndroidHomeAction) Type() string { return ActionTypeAndroidHome }

func (a AndroidHomeAction) MarshalJSON() ([]byte, error) {
	type plain AndroidHomeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// OSStartAppAction starts an application by its package name.
type OSStartAppAction struct {
	ActionBase
	PackageName string `json:"packageName"`
}

func (OSStartAppAction) Type() string { return ActionTypeOSStartApp }

func (a OSStartAppAction) MarshalJSON() ([]byte, error) {
	type plain OSStartAppAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// OSStartAppByNameAction starts an application by its display name.
type OSStartAppByNameAction struct {
	ActionBase
	Name string `json:"name"`
}

func (OSStartAppByNameAction) Type() string { return ActionTypeOSStartAppByName }

func (a OSStartAppByNameAction) MarshalJSON() ([]byte, error) {
	type plain OSStartAppByNameAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// OSCloseAppAction closes an application by its package name.
type OSCloseAppAction struct {
	ActionBase
	PackageName string `json:"packageName"`
}

func (OSCloseAppAction) Type() string { return ActionTypeOSCloseApp }

func (a OSCloseAppAction) MarshalJSON() ([]byte, error) {
	type plain OSCloseAppAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// OSListAppsAction lists the installed applications.
type OSListAppsAction struct {
	ActionBase
}

func (OSListAppsAction) Type() string { return ActionTypeOSListApps }

func (a OSListAppsAction) MarshalJSON() ([]byte, error) {
	type plain OSListAppsAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}
