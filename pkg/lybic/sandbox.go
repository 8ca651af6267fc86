package lybic

import (
	"context"
)

// ListSandboxes returns the sandboxes of the organization.
func (c *Client) ListSandboxes(ctx context.Context) ([]Sandbox, error) {
	sbs, err := c.sandboxes.List(ctx)
	return sbs, mapError(err)
}

// CreateSandbox creates a new sandbox. The name defaults to "sandbox" and the
// lifetime to one hour.
func (c *Client) CreateSandbox(ctx context.Context, req CreateSandboxRequest) (*SandboxDetails, error) {
	sb, err := c.sandboxes.Create(ctx, req)
	return sb, mapError(err)
}

// GetSandbox returns a sandbox with its connection details.
func (c *Client) GetSandbox(ctx context.Context, sandboxID string) (*SandboxDetails, error) {
	sb, err := c.sandboxes.Get(ctx, sandboxID)
	return sb, mapError(err)
}

// DeleteSandbox deletes a sandbox.
func (c *Client) DeleteSandbox(ctx context.Context, sandboxID string) error {
	return mapError(c.sandboxes.Delete(ctx, sandboxID))
}

// ExtendSandboxLife sets the new lifetime of a sandbox.
func (c *Client) ExtendSandboxLife(ctx context.Context, sandboxID string, maxLifeSeconds int) error {
	return mapError(c.sandboxes.ExtendLife(ctx, sandboxID, ExtendSandboxRequest{MaxLifeSeconds: maxLifeSeconds}))
}

// PreviewSandbox takes a screenshot of the sandbox and returns its URL with
// the cursor position.
func (c *Client) PreviewSandbox(ctx context.Context, sandboxID string) (*ActionResult, error) {
	res, err := c.sandboxes.Preview(ctx, sandboxID)
	return res, mapError(err)
}

// GetScreenshot takes and downloads a sandbox screenshot.
func (c *Client) GetScreenshot(ctx context.Context, sandboxID string) (*Screenshot, error) {
	shot, err := c.sandboxes.GetScreenshot(ctx, sandboxID)
	return shot, mapError(err)
}

// GetScreenshotBase64 takes and downloads a sandbox screenshot encoded in base64.
func (c *Client) GetScreenshotBase64(ctx context.Context, sandboxID string) (string, error) {
	b64, err := c.sandboxes.GetScreenshotBase64(ctx, sandboxID)
	return b64, mapError(err)
}

// ExecuteAction executes an action on a sandbox using the computer use
// endpoint, or the mobile use one for mobile only actions. A call ID is set on
// the action when it doesn't have one.
func (c *Client) ExecuteAction(ctx context.Context, sandboxID string, req ExecuteActionRequest) (*ActionResult, error) {
	res, err := c.sandboxes.ExecuteAction(ctx, sandboxID, req)
	return res, mapError(err)
}

// ExecuteComputerUseAction executes a computer use action on a sandbox.
func (c *Client) ExecuteComputerUseAction(ctx context.Context, sandboxID string, req ExecuteActionRequest) (*ActionResult, error) {
	res, err := c.sandboxes.ExecuteComputerUseAction(ctx, sandboxID, req)
	return res, mapError(err)
}

// ExecuteMobileUseAction executes a mobile use action on a sandbox.
func (c *Client) ExecuteMobileUseAction(ctx context.Context, sandboxID string, req ExecuteActionRequest) (*ActionResult, error) {
	res, err := c.sandboxes.ExecuteMobileUseAction(ctx, sandboxID, req)
	return res, mapError(err)
}

// CopyFiles copies files between a sandbox and HTTP locations.
func (c *Client) CopyFiles(ctx context.Context, sandboxID string, req FileCopyRequest) (*FileCopyResponse, error) {
	res, err := c.sandboxes.CopyFiles(ctx, sandboxID, req)
	return res, mapError(err)
}

// ExecuteProcess runs a process inside a sandbox and waits for it.
func (c *Client) ExecuteProcess(ctx context.Context, sandboxID string, req ProcessRequest) (*ProcessResult, error) {
	res, err := c.sandboxes.ExecuteProcess(ctx, sandboxID, req)
	return res, mapError(err)
}
