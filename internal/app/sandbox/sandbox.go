package sandbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/storage"
)

// ServiceConfig is the configuration for the sandbox service.
type ServiceConfig struct {
	Requester api.Requester
	OrgID     string
	// Journal is optional, when set every executed action is recorded.
	Journal storage.ActionJournal
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Requester == nil {
		return fmt.Errorf("requester is required")
	}
	if c.OrgID == "" {
		return fmt.Errorf("org id is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Sandbox"})
	return nil
}

// Service manages the sandboxes of an organization and runs actions on them.
type Service struct {
	req     api.Requester
	orgID   string
	journal storage.ActionJournal
	logger  log.Logger
}

// NewService creates a new sandbox service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		req:     cfg.Requester,
		orgID:   cfg.OrgID,
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}, nil
}

func (s *Service) path(sandboxID, suffix string) string {
	if sandboxID == "" {
		return api.Path("/api/orgs/%s/sandboxes", s.orgID) + suffix
	}
	return api.Path("/api/orgs/%s/sandboxes/%s", s.orgID, sandboxID) + suffix
}

func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("sandbox id is required: %w", model.ErrNotValid)
	}
	return nil
}

// List returns all the sandboxes of the organization.
func (s *Service) List(ctx context.Context) ([]model.Sandbox, error) {
	var sandboxes []model.Sandbox
	if err := s.req.Do(ctx, http.MethodGet, s.path("", ""), nil, &sandboxes); err != nil {
		return nil, fmt.Errorf("could not list sandboxes: %w", err)
	}

	s.logger.Debugf("Found %d sandboxes", len(sandboxes))
	return sandboxes, nil
}

// Create creates a sandbox, unset request fields get their defaults.
func (s *Service) Create(ctx context.Context, req model.CreateSandboxRequest) (*model.SandboxDetails, error) {
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var details model.SandboxDetails
	if err := s.req.Do(ctx, http.MethodPost, s.path("", ""), req, &details); err != nil {
		return nil, fmt.Errorf("could not create sandbox: %w", err)
	}

	s.logger.Infof("Sandbox %s (%s) created", details.Sandbox.ID, details.Sandbox.Name)
	return &details, nil
}

// Get returns a sandbox with its connection details.
func (s *Service) Get(ctx context.Context, sandboxID string) (*model.SandboxDetails, error) {
	if err := requireID(sandboxID); err != nil {
		return nil, err
	}

	var details model.SandboxDetails
	if err := s.req.Do(ctx, http.MethodGet, s.path(sandboxID, ""), nil, &details); err != nil {
		return nil, fmt.Errorf("could not get sandbox %s: %w", sandboxID, err)
	}

	return &details, nil
}

// Delete deletes a sandbox.
func (s *Service) Delete(ctx context.Context, sandboxID string) error {
	if err := requireID(sandboxID); err != nil {
		return err
	}

	if err := s.req.Do(ctx, http.MethodDelete, s.path(sandboxID, ""), nil, nil); err != nil {
		return fmt.Errorf("could not delete sandbox %s: %w", sandboxID, err)
	}

	s.logger.Infof("Sandbox %s deleted", sandboxID)
	return nil
}

// ExtendLife sets the maximum life of a sandbox.
func (s *Service) ExtendLife(ctx context.Context, sandboxID string, req model.ExtendSandboxRequest) error {
	if err := requireID(sandboxID); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, "/extend"), req, nil); err != nil {
		return fmt.Errorf("could not extend sandbox %s life: %w", sandboxID, err)
	}

	s.logger.Debugf("Sandbox %s max life set to %ds", sandboxID, req.MaxLifeSeconds)
	return nil
}

// Preview returns the current screenshot URL and cursor position of a sandbox.
func (s *Service) Preview(ctx context.Context, sandboxID string) (*model.ActionResult, error) {
	if err := requireID(sandboxID); err != nil {
		return nil, err
	}

	var res model.ActionResult
	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, "/preview"), nil, &res); err != nil {
		return nil, fmt.Errorf("could not preview sandbox %s: %w", sandboxID, err)
	}

	return &res, nil
}

// GetScreenshot previews the sandbox and downloads its screenshot.
func (s *Service) GetScreenshot(ctx context.Context, sandboxID string) (*model.Screenshot, error) {
	preview, err := s.Preview(ctx, sandboxID)
	if err != nil {
		return nil, err
	}
	if preview.ScreenShot == "" {
		return nil, fmt.Errorf("sandbox %s preview has no screenshot", sandboxID)
	}

	data, contentType, err := s.req.Fetch(ctx, preview.ScreenShot)
	if err != nil {
		return nil, fmt.Errorf("could not download screenshot: %w", err)
	}

	return &model.Screenshot{URL: preview.ScreenShot, ContentType: contentType, Data: data}, nil
}

// GetScreenshotBase64 returns the base64 encoded sandbox screenshot.
func (s *Service) GetScreenshotBase64(ctx context.Context, sandboxID string) (string, error) {
	shot, err := s.GetScreenshot(ctx, sandboxID)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(shot.Data), nil
}

// ExecuteAction executes an action on a computer-use sandbox, or a mobile-use
// one when the action is only accepted by mobile-use sandboxes.
//
// Actions without call ID get a new one. Executing again an action whose call
// ID is already in the journal replaces it with a new one, so every execution
// is recorded.
func (s *Service) ExecuteAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error) {
	if req.Action != nil && !model.IsComputerUseAction(req.Action) && model.IsMobileUseAction(req.Action) {
		return s.ExecuteMobileUseAction(ctx, sandboxID, req)
	}
	return s.ExecuteComputerUseAction(ctx, sandboxID, req)
}

// ExecuteComputerUseAction executes a computer-use action on a sandbox.
func (s *Service) ExecuteComputerUseAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error) {
	return s.execute(ctx, sandboxID, "/actions/computer-use", model.ActionUnionComputerUse, req)
}

// ExecuteMobileUseAction executes a mobile-use action on a sandbox.
func (s *Service) ExecuteMobileUseAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error) {
	return s.execute(ctx, sandboxID, "/actions/mobile-use", model.ActionUnionMobileUse, req)
}

func (s *Service) execute(ctx context.Context, sandboxID, suffix string, union model.ActionUnion, req model.ExecuteActionRequest) (*model.ActionResult, error) {
	if err := requireID(sandboxID); err != nil {
		return nil, err
	}
	if err := model.ValidateAction(req.Action); err != nil {
		return nil, fmt.Errorf("invalid action: %w", err)
	}
	if !accepts(union, req.Action) {
		return nil, &model.UnknownActionTypeError{Type: req.Action.Type(), Union: union.String()}
	}

	callID := model.EnsureCallID(req.Action)
	if s.recorded(ctx, callID) {
		// Every execution needs its own call ID to be correlated.
		callID = model.RenewCallID(req.Action)
	}
	logger := s.logger.WithValues(log.Kv{"sandbox-id": sandboxID, "call-id": callID})
	logger.Debugf("Executing %s action", req.Action.Type())

	var res model.ActionResult
	err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, suffix), req, &res)
	s.record(ctx, logger, sandboxID, req.Action, err)
	if err != nil {
		return nil, fmt.Errorf("could not execute %s action: %w", req.Action.Type(), err)
	}

	return &res, nil
}

func accepts(union model.ActionUnion, a model.Action) bool {
	switch union {
	case model.ActionUnionComputerUse:
		return model.IsComputerUseAction(a)
	case model.ActionUnionMobileUse:
		return model.IsMobileUseAction(a)
	}
	return true
}

// recorded returns true when the journal already has an execution with the call ID.
func (s *Service) recorded(ctx context.Context, callID string) bool {
	if s.journal == nil {
		return false
	}

	_, err := s.journal.GetActionByCallID(ctx, callID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warningf("Could not check the journal for call %s: %s", callID, err)
		}
		return false
	}
	return true
}

// record stores the action in the journal, journal failures never fail the action.
func (s *Service) record(ctx context.Context, logger log.Logger, sandboxID string, a model.Action, execErr error) {
	if s.journal == nil {
		return
	}

	payload, err := json.Marshal(a)
	if err != nil {
		logger.Warningf("Could not encode action for the journal: %s", err)
		return
	}

	r := model.ActionRecord{
		CallID:     a.GetCallID(),
		SandboxID:  sandboxID,
		ActionType: a.Type(),
		Payload:    string(payload),
		Status:     model.ActionRecordStatusDone,
	}
	if execErr != nil {
		r.Status = model.ActionRecordStatusFailed
		r.Error = execErr.Error()
	}

	if _, err := s.journal.RecordAction(ctx, r); err != nil {
		logger.Warningf("Could not record action in the journal: %s", err)
	}
}

// CopyFiles copies files between the sandbox and HTTP locations.
func (s *Service) CopyFiles(ctx context.Context, sandboxID string, req model.FileCopyRequest) (*model.FileCopyResponse, error) {
	if err := requireID(sandboxID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var res model.FileCopyResponse
	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, "/file/copy"), req, &res); err != nil {
		return nil, fmt.Errorf("could not copy files: %w", err)
	}

	for _, r := range res.Results {
		if !r.Success {
			s.logger.Warningf("File copy %q failed: %s", r.ID, r.Error)
		}
	}

	return &res, nil
}

// ExecuteProcess runs a process in the sandbox and waits for it to finish.
func (s *Service) ExecuteProcess(ctx context.Context, sandboxID string, req model.ProcessRequest) (*model.ProcessResult, error) {
	if err := requireID(sandboxID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var res model.ProcessResult
	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, "/process"), req, &res); err != nil {
		return nil, fmt.Errorf("could not execute process %s: %w", req.Executable, err)
	}

	s.logger.Debugf("Process %s exited with code %d", req.Executable, res.ExitCode)
	return &res, nil
}
