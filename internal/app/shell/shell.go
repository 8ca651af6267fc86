package shell

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/stream"
)

// ServiceConfig is the configuration for the shell service.
type ServiceConfig struct {
	Requester api.Requester
	OrgID     string
	Logger    log.Logger
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Shell"})
	return nil
}

// Service runs shell sessions on sandboxes.
type Service struct {
	req    api.Requester
	orgID  string
	logger log.Logger
}

// NewService creates a new shell service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{req: cfg.Requester, orgID: cfg.OrgID, logger: cfg.Logger}, nil
}

func (s *Service) path(sandboxID, sessionID, suffix string) string {
	if sessionID == "" {
		return api.Path("/api/orgs/%s/sandboxes/%s/shell", s.orgID, sandboxID) + suffix
	}
	return api.Path("/api/orgs/%s/sandboxes/%s/shell/%s", s.orgID, sandboxID, sessionID) + suffix
}

func validateIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("sandbox and session ids are required: %w", model.ErrNotValid)
		}
	}
	return nil
}

// Create starts a shell session whose output is read with Read.
func (s *Service) Create(ctx context.Context, sandboxID string, req model.ShellSessionRequest) (*model.ShellSession, error) {
	if err := validateIDs(sandboxID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var session model.ShellSession
	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, "", ""), req, &session); err != nil {
		return nil, fmt.Errorf("could not create shell session: %w", err)
	}

	s.logger.Debugf("Shell session %s created on sandbox %s", session.SessionID, sandboxID)
	return &session, nil
}

// Stream starts a shell session and returns a decoder of its output events.
// The caller must close the decoder. The stream has no timeout, it ends with
// the session or when ctx is cancelled.
func (s *Service) Stream(ctx context.Context, sandboxID string, req model.ShellSessionRequest) (*stream.Decoder, error) {
	if err := validateIDs(sandboxID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	body, err := s.req.Stream(ctx, http.MethodPost, s.path(sandboxID, "", "/stream"), req)
	if err != nil {
		return nil, fmt.Errorf("could not stream shell session: %w", err)
	}

	dec, err := stream.NewDecoder(body, stream.DecoderConfig{Logger: s.logger})
	if err != nil {
		body.Close()
		return nil, err
	}

	return dec, nil
}

// Write sends data to the standard input of a shell session.
func (s *Service) Write(ctx context.Context, sandboxID, sessionID string, data string) error {
	if err := validateIDs(sandboxID, sessionID); err != nil {
		return err
	}

	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, sessionID, ""), model.ShellWriteRequest{Data: data}, nil); err != nil {
		return fmt.Errorf("could not write to shell session %s: %w", sessionID, err)
	}
	return nil
}

// Read returns the output of a shell session since the last read.
func (s *Service) Read(ctx context.Context, sandboxID, sessionID string) (*model.ShellOutput, error) {
	if err := validateIDs(sandboxID, sessionID); err != nil {
		return nil, err
	}

	var out model.ShellOutput
	if err := s.req.Do(ctx, http.MethodPost, s.path(sandboxID, sessionID, "/read"), nil, &out); err != nil {
		return nil, fmt.Errorf("could not read shell session %s: %w", sessionID, err)
	}
	return &out, nil
}

// Finish closes the standard input of a shell session.
func (s *Service) Finish(ctx context.Context, sandboxID, sessionID string) error {
	if err := validateIDs(sandboxID, sessionID); err != nil {
		return err
	}

	if err := s.req.Do(ctx, http.MethodPut, s.path(sandboxID, sessionID, "/finish"), nil, nil); err != nil {
		return fmt.Errorf("could not finish shell session %s: %w", sessionID, err)
	}
	return nil
}

// Terminate kills a shell session.
func (s *Service) Terminate(ctx context.Context, sandboxID, sessionID string) error {
	if err := validateIDs(sandboxID, sessionID); err != nil {
		return err
	}

	if err := s.req.Do(ctx, http.MethodDelete, s.path(sandboxID, sessionID, ""), nil, nil); err != nil {
		return fmt.Errorf("could not terminate shell session %s: %w", sessionID, err)
	}

	s.logger.Debugf("Shell session %s terminated", sessionID)
	return nil
}
