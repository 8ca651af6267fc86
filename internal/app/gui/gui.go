// Package gui has a pyautogui like controller of a computer use sandbox.
//
// Every controller call is executed as a computer use action on its sandbox.
// Calls of the same controller are serialized, only one action per controller
// is in flight at a time.
package gui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/worker"
)

// ActionExecutor executes computer use actions on sandboxes.
type ActionExecutor interface {
	Get(ctx context.Context, sandboxID string) (*model.SandboxDetails, error)
	ExecuteComputerUseAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error)
}

// Button is a mouse button name.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

func (b Button) code() int {
	switch Button(strings.ToLower(string(b))) {
	case ButtonRight:
		return model.MouseButtonRight
	case ButtonMiddle:
		return model.MouseButtonMiddle
	default:
		return model.MouseButtonLeft
	}
}

// Delays of the Open launcher sequence.
const (
	launcherAppearDelay = 500 * time.Millisecond
	searchResultsDelay  = time.Second
	appLaunchDelay      = 500 * time.Millisecond
	winAppLaunchDelay   = time.Second
)

// ControllerConfig is the configuration of the GUI controller.
type ControllerConfig struct {
	Executor  ActionExecutor
	SandboxID string
	// Sleep waits between repeated actions, defaults to a context aware time.Sleep.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Executor == nil {
		return fmt.Errorf("executor is required")
	}
	if c.SandboxID == "" {
		return fmt.Errorf("sandbox id is required")
	}
	if c.Sleep == nil {
		c.Sleep = sleep
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.GUIController", "sandbox-id": c.SandboxID})
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Controller drives the mouse and keyboard of a sandbox.
type Controller struct {
	cfg    ControllerConfig
	worker *worker.Worker
	logger log.Logger
}

// NewController returns a controller bound to a sandbox. It must be closed
// when no longer used.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	w, err := worker.New(worker.Config{Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}

	return &Controller{cfg: cfg, worker: w, logger: cfg.Logger}, nil
}

// Clone returns a new controller for another sandbox (or the same one when
// sandboxID is empty) with its own serialization queue.
func (c *Controller) Clone(sandboxID string) (*Controller, error) {
	cfg := c.cfg
	if sandboxID != "" {
		cfg.SandboxID = sandboxID
	}
	return NewController(cfg)
}

// Close waits for the pending calls and stops the controller. It's safe to call multiple times.
func (c *Controller) Close() error {
	return c.worker.Close()
}

func (c *Controller) exec(ctx context.Context, a model.Action, withCursor bool) (*model.ActionResult, error) {
	no := false
	req := model.ExecuteActionRequest{Action: a, IncludeScreenShot: &no, IncludeCursorPosition: &withCursor}

	var res *model.ActionResult
	err := c.worker.Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = c.cfg.Executor.ExecuteComputerUseAction(ctx, c.cfg.SandboxID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Position returns the current mouse position.
func (c *Controller) Position(ctx context.Context) (x, y int, err error) {
	res, err := c.exec(ctx, &model.FinishedAction{}, true)
	if err != nil {
		return 0, 0, err
	}
	if res.CursorPosition == nil {
		return 0, 0, fmt.Errorf("could not get mouse position: cursor position missing in response")
	}
	return res.CursorPosition.X, res.CursorPosition.Y, nil
}

// MoveTo moves the mouse to an absolute position.
func (c *Controller) MoveTo(ctx context.Context, x, y int) error {
	_, err := c.exec(ctx, &model.MouseMoveAction{X: model.Px(x), Y: model.Px(y)}, false)
	return err
}

// Move moves the mouse relative to its current position.
func (c *Controller) Move(ctx context.Context, dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	x, y, err := c.Position(ctx)
	if err != nil {
		return err
	}
	return c.MoveTo(ctx, x+dx, y+dy)
}

// ClickOptions are the options of Click.
type ClickOptions struct {
	// X and Y default to the current mouse position when nil.
	X, Y *int
	// Clicks defaults to 1, 2 sends a single double click.
	Clicks int
	// Interval is the wait between clicks.
	Interval time.Duration
	Button   Button
}

// Click clicks a mouse button.
func (c *Controller) Click(ctx context.Context, opts ClickOptions) error {
	x, y, err := c.resolvePosition(ctx, opts.X, opts.Y)
	if err != nil {
		return err
	}
	clicks := opts.Clicks
	if clicks <= 0 {
		clicks = 1
	}
	button := opts.Button.code()
	c.logger.Debugf("click(x=%d, y=%d, clicks=%d, button=%q)", x, y, clicks, opts.Button)

	if clicks == 2 {
		_, err := c.exec(ctx, &model.MouseDoubleClickAction{X: model.Px(x), Y: model.Px(y), Button: button}, false)
		return err
	}

	for i := 0; i < clicks; i++ {
		if _, err := c.exec(ctx, &model.MouseClickAction{X: model.Px(x), Y: model.Px(y), Button: button}, false); err != nil {
			return err
		}
		if i < clicks-1 {
			if err := c.cfg.Sleep(ctx, opts.Interval); err != nil {
				return err
			}
		}
	}
	return nil
}

// DoubleClick double clicks a mouse button, x and y default to the current position when nil.
func (c *Controller) DoubleClick(ctx context.Context, x, y *int, button Button) error {
	return c.Click(ctx, ClickOptions{X: x, Y: y, Clicks: 2, Button: button})
}

func (c *Controller) resolvePosition(ctx context.Context, x, y *int) (int, int, error) {
	if x != nil && y != nil {
		return *x, *y, nil
	}
	return c.Position(ctx)
}

// Write types text.
func (c *Controller) Write(ctx context.Context, text string) error {
	_, err := c.exec(ctx, &model.KeyboardTypeAction{Content: text}, false)
	return err
}

// Press presses a key (or a key combination like "ctrl+c") presses times.
func (c *Controller) Press(ctx context.Context, keys string, presses int, interval time.Duration) error {
	if presses <= 0 {
		presses = 1
	}
	for i := 0; i < presses; i++ {
		if _, err := c.exec(ctx, &model.KeyboardHotkeyAction{Keys: keys}, false); err != nil {
			return err
		}
		if i < presses-1 {
			if err := c.cfg.Sleep(ctx, interval); err != nil {
				return err
			}
		}
	}
	return nil
}

// Hotkey presses a key combination.
func (c *Controller) Hotkey(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("at least one key is required: %w", model.ErrNotValid)
	}
	_, err := c.exec(ctx, &model.KeyboardHotkeyAction{Keys: strings.Join(keys, "+")}, false)
	return err
}

// KeyDown is not supported by the sandboxes, a key can't be held between actions.
func (c *Controller) KeyDown(ctx context.Context, key string) error {
	c.logger.Warningf("KeyDown is not supported")
	return fmt.Errorf("holding a key down: %w", model.ErrUnsupportedOperation)
}

// KeyUp is not supported by the sandboxes, a key can't be held between actions.
func (c *Controller) KeyUp(ctx context.Context, key string) error {
	c.logger.Warningf("KeyUp is not supported")
	return fmt.Errorf("releasing a key: %w", model.ErrUnsupportedOperation)
}

// Open opens an application or file using the launcher of the sandbox OS.
func (c *Controller) Open(ctx context.Context, appOrFile string) error {
	details, err := c.cfg.Executor.Get(ctx, c.cfg.SandboxID)
	if err != nil {
		return err
	}
	var osName string
	if details.Sandbox.Shape != nil {
		osName = strings.ToLower(string(details.Sandbox.Shape.OS))
	}

	finalDelay := appLaunchDelay
	switch {
	case strings.HasPrefix(osName, "mac") || strings.HasPrefix(osName, "darwin"):
		err = c.Hotkey(ctx, "command", "space")
	case strings.HasPrefix(osName, "linux"):
		err = c.Press(ctx, "super", 1, 0)
	case strings.HasPrefix(osName, "win"):
		err = c.Hotkey(ctx, "win", "r")
		finalDelay = winAppLaunchDelay
	default:
		return fmt.Errorf("open on %q sandboxes: %w", osName, model.ErrUnsupportedOperation)
	}
	if err != nil {
		return err
	}

	steps := []func() error{
		func() error { return c.cfg.Sleep(ctx, launcherAppearDelay) },
		func() error { return c.Write(ctx, appOrFile) },
		func() error { return c.cfg.Sleep(ctx, searchResultsDelay) },
		func() error { return c.Press(ctx, "enter", 1, 0) },
		func() error { return c.cfg.Sleep(ctx, finalDelay) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}
