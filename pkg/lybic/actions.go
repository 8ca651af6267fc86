package lybic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lybic/lybic-sdk-go/internal/app/script"
	"github.com/lybic/lybic-sdk-go/internal/model"
	storageio "github.com/lybic/lybic-sdk-go/internal/storage/io"
)

// DecodeAction decodes a JSON action payload of any type.
func DecodeAction(data []byte) (Action, error) {
	a, err := model.DecodeAction(data)
	return a, mapError(err)
}

// DecodeComputerUseAction decodes a JSON action payload that must be a computer use action.
func DecodeComputerUseAction(data []byte) (Action, error) {
	a, err := model.DecodeComputerUseAction(data)
	return a, mapError(err)
}

// DecodeMobileUseAction decodes a JSON action payload that must be a mobile use action.
func DecodeMobileUseAction(data []byte) (Action, error) {
	a, err := model.DecodeMobileUseAction(data)
	return a, mapError(err)
}

// DecodeActionMap decodes an action from its generic map form.
func DecodeActionMap(payload map[string]any) (Action, error) {
	a, err := model.DecodeActionMap(payload)
	return a, mapError(err)
}

// ValidateAction checks a constructed action satisfies its schema.
func ValidateAction(a Action) error {
	return mapError(model.ValidateAction(a))
}

// ActionTypes returns the registered action types.
func ActionTypes() []ActionInfo { return model.ActionTypes() }

// ParseComputerUseOutput parses the text output of an LLM into computer use actions.
func (c *Client) ParseComputerUseOutput(ctx context.Context, pm ParseModel, text string) (*ParsedActions, error) {
	res, err := c.computerUse.ParseLLMOutput(ctx, pm, text)
	return res, mapError(err)
}

// ParseMobileUseOutput parses the text output of an LLM into mobile use actions.
func (c *Client) ParseMobileUseOutput(ctx context.Context, pm ParseModel, text string) (*ParsedActions, error) {
	res, err := c.mobileUse.ParseLLMOutput(ctx, pm, text)
	return res, mapError(err)
}

// SetGPSLocation sets the GPS location of an Android sandbox.
func (c *Client) SetGPSLocation(ctx context.Context, sandboxID string, latitude, longitude float64) (*ProcessResult, error) {
	res, err := c.mobileUse.SetGPSLocation(ctx, sandboxID, GPSLocation{Latitude: latitude, Longitude: longitude})
	return res, mapError(err)
}

// InstallAPK installs APKs on an Android sandbox in the background, remote
// APKs are downloaded by the device first.
func (c *Client) InstallAPK(ctx context.Context, sandboxID string, sources ...APKSource) error {
	return mapError(c.mobileUse.InstallAPK(ctx, sandboxID, sources))
}

// LoadActionScript loads a YAML or JSON action script file, its actions must
// belong to the union.
func LoadActionScript(ctx context.Context, path string, union ActionUnion) (*ActionScript, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid script path: %w", err)
	}

	repo := storageio.NewActionScriptYAMLRepository(os.DirFS(filepath.Dir(abs)))
	s, err := repo.GetActionScript(ctx, filepath.Base(abs), union)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// RunScriptOpts are the options to run an action script.
type RunScriptOpts struct {
	// SandboxID overrides the script sandbox.
	SandboxID string
	// ContinueOnError keeps running the actions after a failed one.
	ContinueOnError bool
}

// ScriptStepResult is the result of a single script action.
type ScriptStepResult = script.StepResult

// RunScript executes the script actions in order.
func (c *Client) RunScript(ctx context.Context, s ActionScript, opts RunScriptOpts) ([]ScriptStepResult, error) {
	res, err := c.scripts.Run(ctx, script.Request{
		SandboxID:       opts.SandboxID,
		Script:          s,
		ContinueOnError: opts.ContinueOnError,
	})
	return res, mapError(err)
}

// ActionHistory returns the actions executed by the client, newest first.
func (c *Client) ActionHistory(ctx context.Context, filter ActionRecordFilter) ([]ActionRecord, error) {
	rs, err := c.journal.ListActions(ctx, filter)
	return rs, mapError(err)
}

// GetActionByCallID returns the journal record of an executed action.
func (c *Client) GetActionByCallID(ctx context.Context, callID string) (*ActionRecord, error) {
	r, err := c.journal.GetActionByCallID(ctx, callID)
	return r, mapError(err)
}
