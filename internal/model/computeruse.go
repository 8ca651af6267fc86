package model

import (
	"encoding/json"
	"fmt"
)

// ParseModel is the LLM output format the parse endpoints understand.
type ParseModel string

const (
	ParseModelUITars        ParseModel = "ui-tars"
	ParseModelOAIComputeUse ParseModel = "oai-compute-use"
)

// ParseModels are the supported LLM output formats.
var ParseModels = []ParseModel{ParseModelUITars, ParseModelOAIComputeUse}

// Validate checks the model is a supported one.
func (m ParseModel) Validate() error {
	for _, pm := range ParseModels {
		if m == pm {
			return nil
		}
	}
	return fmt.Errorf("invalid parse model %q, must be one of %v: %w", string(m), ParseModels, ErrNotValid)
}

// ParseTextRequest is the request to parse LLM output into actions.
type ParseTextRequest struct {
	TextContent string `json:"textContent"`
}

// ParsedActions is the result of parsing LLM output into actions.
type ParsedActions struct {
	Unknown  string   `json:"unknown,omitempty"`
	Thoughts string   `json:"thoughts,omitempty"`
	Memory   string   `json:"memory,omitempty"`
	Actions  []Action `json:"actions"`
}

// DecodeParsedActions decodes a parse response, the actions must belong to union.
func DecodeParsedActions(union ActionUnion, data []byte) (*ParsedActions, error) {
	var raw struct {
		Unknown  string            `json:"unknown"`
		Thoughts string            `json:"thoughts"`
		Memory   string            `json:"memory"`
		Actions  []json.RawMessage `json:"actions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not decode parsed actions: %w", err)
	}

	res := &ParsedActions{
		Unknown:  raw.Unknown,
		Thoughts: raw.Thoughts,
		Memory:   raw.Memory,
		Actions:  make([]Action, 0, len(raw.Actions)),
	}
	for i, ra := range raw.Actions {
		a, err := DecodeUnionAction(union, ra)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		res.Actions = append(res.Actions, a)
	}

	return res, nil
}

// ExecuteActionRequest is the request to execute an action on a sandbox.
type ExecuteActionRequest struct {
	Action Action
	// IncludeScreenShot defaults to true.
	IncludeScreenShot *bool
	// IncludeCursorPosition defaults to true.
	IncludeCursorPosition *bool
}

type executeActionRequestJSON struct {
	Action                json.RawMessage `json:"action"`
	IncludeScreenShot     bool            `json:"includeScreenShot"`
	IncludeCursorPosition bool            `json:"includeCursorPosition"`
	CallID                string          `json:"callId,omitempty"`
}

func (r ExecuteActionRequest) MarshalJSON() ([]byte, error) {
	if r.Action == nil {
		return nil, fmt.Errorf("action is required: %w", ErrNotValid)
	}
	action, err := json.Marshal(r.Action)
	if err != nil {
		return nil, err
	}

	return json.Marshal(executeActionRequestJSON{
		Action:                action,
		IncludeScreenShot:     boolOrTrue(r.IncludeScreenShot),
		IncludeCursorPosition: boolOrTrue(r.IncludeCursorPosition),
		CallID:                r.Action.GetCallID(),
	})
}

// UnmarshalJSON decodes the request validating the action.
func (r *ExecuteActionRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action                json.RawMessage `json:"action"`
		IncludeScreenShot     *bool           `json:"includeScreenShot"`
		IncludeCursorPosition *bool           `json:"includeCursorPosition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a, err := DecodeAction(raw.Action)
	if err != nil {
		return err
	}

	*r = ExecuteActionRequest{
		Action:                a,
		IncludeScreenShot:     raw.IncludeScreenShot,
		IncludeCursorPosition: raw.IncludeCursorPosition,
	}
	return nil
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

// CursorPosition is the position of the cursor on a sandbox screen.
type CursorPosition struct {
	X            int `json:"x"`
	Y            int `json:"y"`
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	ScreenIndex  int `json:"screenIndex"`
}

// ActionResult is the result of executing an action (or a preview) on a sandbox.
type ActionResult struct {
	// ScreenShot is the URL of the screenshot taken after the action.
	ScreenShot     string          `json:"screenShot,omitempty"`
	CursorPosition *CursorPosition `json:"cursorPosition,omitempty"`
	// Output is the action specific result (e.g the app list of os:listApps).
	Output json.RawMessage `json:"actionResult,omitempty"`
}

// Screenshot is a downloaded sandbox screenshot.
type Screenshot struct {
	URL         string
	ContentType string
	Data        []byte
}
