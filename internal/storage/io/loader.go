package io

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

// ActionScriptYAMLRepository loads action scripts from YAML (or JSON) files.
type ActionScriptYAMLRepository struct {
	fs fs.FS
}

// NewActionScriptYAMLRepository creates a new YAML action script repository.
func NewActionScriptYAMLRepository(filesystem fs.FS) *ActionScriptYAMLRepository {
	return &ActionScriptYAMLRepository{fs: filesystem}
}

// GetActionScript loads an action script and decodes every action with the
// dispatcher of the requested union.
func (r *ActionScriptYAMLRepository) GetActionScript(ctx context.Context, path string, union model.ActionUnion) (model.ActionScript, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ActionScript{}, fmt.Errorf("reading action script: %w", err)
	}

	if ctx.Err() != nil {
		return model.ActionScript{}, ctx.Err()
	}

	var script ActionScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return model.ActionScript{}, fmt.Errorf("parsing YAML: %w", err)
	}

	return script.toModel(union)
}

// ActionScript represents the YAML structure of an action script.
type ActionScript struct {
	SandboxID         string           `yaml:"sandboxId"`
	IncludeScreenShot *bool            `yaml:"includeScreenShot"`
	Actions           []map[string]any `yaml:"actions"`
}

func (s ActionScript) toModel(union model.ActionUnion) (model.ActionScript, error) {
	if len(s.Actions) == 0 {
		return model.ActionScript{}, fmt.Errorf("at least one action is required: %w", model.ErrNotValid)
	}

	actions := make([]model.Action, 0, len(s.Actions))
	for i, raw := range s.Actions {
		data, err := json.Marshal(raw)
		if err != nil {
			return model.ActionScript{}, fmt.Errorf("action %d: could not encode: %w", i, err)
		}
		a, err := model.DecodeUnionAction(union, data)
		if err != nil {
			return model.ActionScript{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}

	return model.ActionScript{
		SandboxID:         s.SandboxID,
		IncludeScreenShot: s.IncludeScreenShot,
		Actions:           actions,
	}, nil
}

// ProfileYAMLRepository loads the CLI connection profile from YAML files.
type ProfileYAMLRepository struct {
	fs fs.FS
}

// NewProfileYAMLRepository creates a new YAML profile repository.
func NewProfileYAMLRepository(filesystem fs.FS) *ProfileYAMLRepository {
	return &ProfileYAMLRepository{fs: filesystem}
}

// GetProfile loads a profile, a missing file returns model.ErrNotFound.
func (r *ProfileYAMLRepository) GetProfile(ctx context.Context, path string) (model.Profile, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Profile{}, fmt.Errorf("profile %s: %w", path, model.ErrNotFound)
		}
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	if ctx.Err() != nil {
		return model.Profile{}, ctx.Err()
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return model.Profile{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := p.validate(); err != nil {
		return model.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}

	return p.toModel(), nil
}

// Profile represents the YAML structure of the CLI profile.
type Profile struct {
	OrgID       string            `yaml:"org_id"`
	APIKey      string            `yaml:"api_key"`
	Endpoint    string            `yaml:"endpoint"`
	Timeout     string            `yaml:"timeout"`
	Headers     map[string]string `yaml:"headers"`
	JournalPath string            `yaml:"journal_path"`
}

func (p Profile) validate() error {
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("timeout can't be negative, got: %s", p.Timeout)
		}
	}
	return nil
}

func (p Profile) toModel() model.Profile {
	// Already validated.
	timeout, _ := time.ParseDuration(p.Timeout)

	return model.Profile{
		OrgID:       p.OrgID,
		APIKey:      p.APIKey,
		Endpoint:    p.Endpoint,
		Timeout:     timeout,
		Headers:     p.Headers,
		JournalPath: p.JournalPath,
	}
}
