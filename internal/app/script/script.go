package script

import (
	"context"
	"fmt"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// ActionExecutor executes actions on sandboxes.
type ActionExecutor interface {
	ExecuteAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error)
}

// ServiceConfig is the configuration for the script service.
type ServiceConfig struct {
	Executor ActionExecutor
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Executor == nil {
		return fmt.Errorf("executor is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Script"})
	return nil
}

// Service runs action scripts.
type Service struct {
	exec   ActionExecutor
	logger log.Logger
}

// NewService creates a new script service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{exec: cfg.Executor, logger: cfg.Logger}, nil
}

// Request is the request to run an action script.
type Request struct {
	// SandboxID overrides the script sandbox.
	SandboxID string
	Script    model.ActionScript
	// ContinueOnError keeps running the next actions after a failed one.
	ContinueOnError bool
}

// StepResult is the result of a single script action.
type StepResult struct {
	Index  int
	Action model.Action
	Result *model.ActionResult
	Err    error
}

// Run executes the script actions in order. Unless ContinueOnError is set it
// stops on the first failed action and returns its error with the results so far.
func (s *Service) Run(ctx context.Context, req Request) ([]StepResult, error) {
	sandboxID := req.SandboxID
	if sandboxID == "" {
		sandboxID = req.Script.SandboxID
	}
	if sandboxID == "" {
		return nil, fmt.Errorf("sandbox id is required: %w", model.ErrNotValid)
	}
	if err := req.Script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	logger := s.logger.WithValues(log.Kv{"sandbox-id": sandboxID})
	results := make([]StepResult, 0, len(req.Script.Actions))
	var failed int
	for i, a := range req.Script.Actions {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := s.exec.ExecuteAction(ctx, sandboxID, model.ExecuteActionRequest{
			Action:            a,
			IncludeScreenShot: req.Script.IncludeScreenShot,
		})
		results = append(results, StepResult{Index: i, Action: a, Result: res, Err: err})
		if err != nil {
			failed++
			logger.Warningf("Action %d (%s) failed: %s", i, a.Type(), err)
			if !req.ContinueOnError {
				return results, fmt.Errorf("action %d (%s): %w", i, a.Type(), err)
			}
			continue
		}
		logger.Debugf("Action %d (%s) executed", i, a.Type())
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d actions failed", failed, len(results))
	}
	logger.Infof("Script executed: %d actions", len(results))
	return results, nil
}
