// Package org manages the organization level resources: projects, MCP servers
// and usage stats.
package org

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// ServiceConfig is the configuration for the organization service.
type ServiceConfig struct {
	Requester api.Requester
	OrgID     string
	// Endpoint is used to build the MCP server URLs.
	Endpoint string
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Requester == nil {
		return fmt.Errorf("requester is required")
	}
	if c.OrgID == "" {
		return fmt.Errorf("org id is required")
	}
	if c.Endpoint == "" {
		c.Endpoint = api.DefaultEndpoint
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Org"})
	return nil
}

// Service manages projects, MCP servers and stats of an organization.
type Service struct {
	req      api.Requester
	orgID    string
	endpoint string
	logger   log.Logger
}

// NewService creates a new organization service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		req:      cfg.Requester,
		orgID:    cfg.OrgID,
		endpoint: cfg.Endpoint,
		logger:   cfg.Logger,
	}, nil
}

// Stats returns the organization resource counters.
func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := s.req.Do(ctx, http.MethodGet, api.Path("/api/orgs/%s/stats", s.orgID), nil, &stats); err != nil {
		return nil, fmt.Errorf("could not get stats: %w", err)
	}
	return &stats, nil
}

// ListProjects returns the organization projects.
func (s *Service) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.req.Do(ctx, http.MethodGet, api.Path("/api/orgs/%s/projects", s.orgID), nil, &projects); err != nil {
		return nil, fmt.Errorf("could not list projects: %w", err)
	}
	return projects, nil
}

// CreateProject creates a project.
func (s *Service) CreateProject(ctx context.Context, req model.CreateProjectRequest) (*model.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var p model.Project
	if err := s.req.Do(ctx, http.MethodPost, api.Path("/api/orgs/%s/projects", s.orgID), req, &p); err != nil {
		return nil, fmt.Errorf("could not create project: %w", err)
	}

	s.logger.Infof("Project %s (%s) created", p.ID, p.Name)
	return &p, nil
}

// DeleteProject deletes a project.
func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	if err := s.req.Do(ctx, http.MethodDelete, api.Path("/api/orgs/%s/projects/%s", s.orgID, projectID), nil, nil); err != nil {
		return fmt.Errorf("could not delete project %s: %w", projectID, err)
	}

	s.logger.Infof("Project %s deleted", projectID)
	return nil
}

// ListMcpServers returns the organization MCP servers.
func (s *Service) ListMcpServers(ctx context.Context) ([]model.McpServer, error) {
	var servers []model.McpServer
	if err := s.req.Do(ctx, http.MethodGet, api.Path("/api/orgs/%s/mcp-servers", s.orgID), nil, &servers); err != nil {
		return nil, fmt.Errorf("could not list mcp servers: %w", err)
	}
	return servers, nil
}

// CreateMcpServer creates an MCP server, unset policy times get their defaults.
func (s *Service) CreateMcpServer(ctx context.Context, req model.CreateMcpServerRequest) (*model.McpServer, error) {
	req.McpServerPolicy.Defaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var srv model.McpServer
	if err := s.req.Do(ctx, http.MethodPost, api.Path("/api/orgs/%s/mcp-servers", s.orgID), req, &srv); err != nil {
		return nil, fmt.Errorf("could not create mcp server: %w", err)
	}

	s.logger.Infof("MCP server %s (%s) created", srv.ID, srv.Name)
	return &srv, nil
}

// GetDefaultMcpServer returns the default MCP server of the organization.
func (s *Service) GetDefaultMcpServer(ctx context.Context) (*model.McpServer, error) {
	var srv model.McpServer
	if err := s.req.Do(ctx, http.MethodGet, api.Path("/api/orgs/%s/mcp-servers/default", s.orgID), nil, &srv); err != nil {
		return nil, fmt.Errorf("could not get default mcp server: %w", err)
	}
	return &srv, nil
}

// DeleteMcpServer deletes an MCP server.
func (s *Service) DeleteMcpServer(ctx context.Context, mcpServerID string) error {
	if mcpServerID == "" {
		return fmt.Errorf("mcp server id is required: %w", model.ErrNotValid)
	}

	if err := s.req.Do(ctx, http.MethodDelete, api.Path("/api/orgs/%s/mcp-servers/%s", s.orgID, mcpServerID), nil, nil); err != nil {
		return fmt.Errorf("could not delete mcp server %s: %w", mcpServerID, err)
	}

	s.logger.Infof("MCP server %s deleted", mcpServerID)
	return nil
}

// SetMcpServerSandbox binds an MCP server to a sandbox.
func (s *Service) SetMcpServerSandbox(ctx context.Context, mcpServerID, sandboxID string) error {
	if mcpServerID == "" || sandboxID == "" {
		return fmt.Errorf("mcp server id and sandbox id are required: %w", model.ErrNotValid)
	}

	path := api.Path("/api/orgs/%s/mcp-servers/%s/sandbox", s.orgID, mcpServerID)
	if err := s.req.Do(ctx, http.MethodPost, path, model.SetMcpServerSandboxRequest{SandboxID: sandboxID}, nil); err != nil {
		return fmt.Errorf("could not set mcp server %s sandbox: %w", mcpServerID, err)
	}

	s.logger.Debugf("MCP server %s bound to sandbox %s", mcpServerID, sandboxID)
	return nil
}

// McpServerURL returns the URL MCP clients use to connect to a server.
func (s *Service) McpServerURL(mcpServerID string) string {
	return s.endpoint + api.Path("/mcp/%s", mcpServerID)
}
