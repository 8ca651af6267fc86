package lybic

import (
	"context"
	"time"

	"github.com/lybic/lybic-sdk-go/internal/app/gui"
)

// MouseButton is a mouse button name used by the GUI controller.
type MouseButton = gui.Button

const (
	ButtonLeft   = gui.ButtonLeft
	ButtonRight  = gui.ButtonRight
	ButtonMiddle = gui.ButtonMiddle
)

// ClickOptions are the options of [GUIController.Click].
type ClickOptions = gui.ClickOptions

// GUIController drives the mouse and keyboard of a sandbox with a
// pyautogui-like API. Calls are executed one at a time in order.
type GUIController struct {
	ctrl *gui.Controller
}

// NewGUIController returns a GUI controller bound to a sandbox. It must be
// closed when no longer used.
func (c *Client) NewGUIController(sandboxID string) (*GUIController, error) {
	ctrl, err := gui.NewController(gui.ControllerConfig{
		Executor:  c.sandboxes,
		SandboxID: sandboxID,
		Logger:    c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &GUIController{ctrl: ctrl}, nil
}

// Clone returns a new controller for another sandbox, or the same one when
// sandboxID is empty.
func (g *GUIController) Clone(sandboxID string) (*GUIController, error) {
	ctrl, err := g.ctrl.Clone(sandboxID)
	if err != nil {
		return nil, mapError(err)
	}
	return &GUIController{ctrl: ctrl}, nil
}

// Close waits for the pending calls and stops the controller.
func (g *GUIController) Close() error { return g.ctrl.Close() }

func (g *GUIController) Position(ctx context.Context) (x, y int, err error) {
	x, y, err = g.ctrl.Position(ctx)
	return x, y, mapError(err)
}

func (g *GUIController) MoveTo(ctx context.Context, x, y int) error {
	return mapError(g.ctrl.MoveTo(ctx, x, y))
}

func (g *GUIController) Move(ctx context.Context, dx, dy int) error {
	return mapError(g.ctrl.Move(ctx, dx, dy))
}

func (g *GUIController) Click(ctx context.Context, opts ClickOptions) error {
	return mapError(g.ctrl.Click(ctx, opts))
}

func (g *GUIController) DoubleClick(ctx context.Context, x, y *int, button MouseButton) error {
	return mapError(g.ctrl.DoubleClick(ctx, x, y, button))
}

func (g *GUIController) Write(ctx context.Context, text string) error {
	return mapError(g.ctrl.Write(ctx, text))
}

func (g *GUIController) Press(ctx context.Context, keys string, presses int, interval time.Duration) error {
	return mapError(g.ctrl.Press(ctx, keys, presses, interval))
}

func (g *GUIController) Hotkey(ctx context.Context, keys ...string) error {
	return mapError(g.ctrl.Hotkey(ctx, keys...))
}

// KeyDown always fails with ErrUnsupportedOperation.
func (g *GUIController) KeyDown(ctx context.Context, key string) error {
	return mapError(g.ctrl.KeyDown(ctx, key))
}

// KeyUp always fails with ErrUnsupportedOperation.
func (g *GUIController) KeyUp(ctx context.Context, key string) error {
	return mapError(g.ctrl.KeyUp(ctx, key))
}

// Open opens an application or file with the launcher of the sandbox OS.
func (g *GUIController) Open(ctx context.Context, appOrFile string) error {
	return mapError(g.ctrl.Open(ctx, appOrFile))
}
