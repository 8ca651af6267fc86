package model

// Computer use (mouse and keyboard) action types.
const (
	ActionTypeMouseClick       = "mouse:click"
	ActionTypeMouseDoubleClick = "mouse:doubleClick"
	ActionTypeMouseTripleClick = "mouse:tripleClick"
	ActionTypeMouseMove        = "mouse:move"
	ActionTypeMouseScroll      = "mouse:scroll"
	ActionTypeMouseDrag        = "mouse:drag"
	ActionTypeKeyboardType     = "keyboard:type"
	ActionTypeKeyboardHotkey   = "keyboard:hotkey"
	ActionTypeKeyDown          = "key:down"
	ActionTypeKeyUp            = "key:up"
)

// Mouse buttons as a bit mask, they can be combined.
const (
	MouseButtonLeft   = 1
	MouseButtonRight  = 2
	MouseButtonMiddle = 4
)

// MouseClickAction clicks a mouse button at a screen position.
type MouseClickAction struct {
	ActionBase
	X       Length `json:"x"`
	Y       Length `json:"y"`
	Button  int    `json:"button"`
	HoldKey string `json:"holdKey,omitempty"`
}

func (MouseClickAction) Type() string { return ActionTypeMouseClick }

func (a MouseClickAction) MarshalJSON() ([]byte, error) {
	type plain MouseClickAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MouseDoubleClickAction double clicks a mouse button at a screen position.
type MouseDoubleClickAction struct {
	ActionBase
	X       Length `json:"x"`
	Y       Length `json:"y"`
	Button  int    `json:"button"`
	HoldKey string `json:"holdKey,omitempty"`
}

func (MouseDoubleClickAction) Type() string { return ActionTypeMouseDoubleClick }

func (a MouseDoubleClickAction) MarshalJSON() ([]byte, error) {
	type plain MouseDoubleClickAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MouseTripleClickAction triple clicks a mouse button at a screen position.
type MouseTripleClickAction struct {
	ActionBase
	X       Length `json:"x"`
	Y       Length `json:"y"`
	Button  int    `json:"button"`
	HoldKey string `json:"holdKey,omitempty"`
}

func (MouseTripleClickAction) Type() string { return ActionTypeMouseTripleClick }

func (a MouseTripleClickAction) MarshalJSON() ([]byte, error) {
	type plain MouseTripleClickAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MouseMoveAction moves the mouse pointer to a screen position.
type MouseMoveAction struct {
	ActionBase
	X       Length `json:"x"`
	Y       Length `json:"y"`
	HoldKey string `json:"holdKey,omitempty"`
}

func (MouseMoveAction) Type() string { return ActionTypeMouseMove }

func (a MouseMoveAction) MarshalJSON() ([]byte, error) {
	type plain MouseMoveAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MouseScrollAction scrolls the mouse wheel at a screen position.
type MouseScrollAction struct {
	ActionBase
	X              Length `json:"x"`
	Y              Length `json:"y"`
	StepVertical   int    `json:"stepVertical"`
	StepHorizontal int    `json:"stepHorizontal"`
	HoldKey        string `json:"holdKey,omitempty"`
}

func (MouseScrollAction) Type() string { return ActionTypeMouseScroll }

func (a MouseScrollAction) MarshalJSON() ([]byte, error) {
	type plain MouseScrollAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// MouseDragAction drags the mouse from a start to an end position.
type MouseDragAction struct {
	ActionBase
	StartX  Length `json:"startX"`
	StartY  Length `json:"startY"`
	EndX    Length `json:"endX"`
	EndY    Length `json:"endY"`
	HoldKey string `json:"holdKey,omitempty"`
}

func (MouseDragAction) Type() string { return ActionTypeMouseDrag }

func (a MouseDragAction) MarshalJSON() ([]byte, error) {
	type plain MouseDragAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// KeyboardTypeAction types text.
type KeyboardTypeAction struct {
	ActionBase
	Content             string `json:"content"`
	TreatNewLineAsEnter bool   `json:"treatNewLineAsEnter,omitempty"`
}

func (KeyboardTypeAction) Type() string { return ActionTypeKeyboardType }

func (a KeyboardTypeAction) MarshalJSON() ([]byte, error) {
	type plain KeyboardTypeAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// KeyboardHotkeyAction presses a key combination (e.g "ctrl+c").
type KeyboardHotkeyAction struct {
	ActionBase
	Keys string `json:"keys"`
	// Duration is the optional hold time in milliseconds.
	Duration *int `json:"duration,omitempty"`
}

func (KeyboardHotkeyAction) Type() string { return ActionTypeKeyboardHotkey }

func (a KeyboardHotkeyAction) MarshalJSON() ([]byte, error) {
	type plain KeyboardHotkeyAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// KeyDownAction presses a key without releasing it.
type KeyDownAction struct {
	ActionBase
	Key string `json:"key"`
}

func (KeyDownAction) Type() string { return ActionTypeKeyDown }

func (a KeyDownAction) MarshalJSON() ([]byte, error) {
	type plain KeyDownAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}

// KeyUpAction releases a pressed key.
type KeyUpAction struct {
	ActionBase
	Key string `json:"key"`
}

func (KeyUpAction) Type() string { return ActionTypeKeyUp }

func (a KeyUpAction) MarshalJSON() ([]byte, error) {
	type plain KeyUpAction
	return marshalAction(a.Type(), a.Extra, plain(a))
}
