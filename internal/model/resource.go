package model

import "fmt"

// Stats are the organization resource counters.
type Stats struct {
	McpServers int `json:"mcpServers"`
	Sandboxes  int `json:"sandboxes"`
	Projects   int `json:"projects"`
}

// Project groups sandboxes and MCP servers.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CreatedAt      string `json:"createdAt"`
	DefaultProject bool   `json:"defaultProject"`
}

// CreateProjectRequest is the request to create a project.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// Validate checks the request is valid.
func (r CreateProjectRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("project name is required: %w", ErrNotValid)
	}
	return nil
}

const (
	// DefaultMcpSandboxMaxLifetimeSeconds is the default maximum lifetime of MCP server sandboxes.
	DefaultMcpSandboxMaxLifetimeSeconds = 3600
	// DefaultMcpSandboxMaxIdleTimeSeconds is the default maximum idle time of MCP server sandboxes.
	DefaultMcpSandboxMaxIdleTimeSeconds = 3600
)

// McpServerPolicy is the policy an MCP server applies to the sandboxes it manages.
type McpServerPolicy struct {
	SandboxMaxLifetimeSeconds int  `json:"sandboxMaxLifetimeSeconds"`
	SandboxMaxIdleTimeSeconds int  `json:"sandboxMaxIdleTimeSeconds"`
	SandboxAutoCreation       bool `json:"sandboxAutoCreation"`
	SandboxExposeRecreateTool bool `json:"sandboxExposeRecreateTool"`
	SandboxExposeRestartTool  bool `json:"sandboxExposeRestartTool"`
	SandboxExposeDeleteTool   bool `json:"sandboxExposeDeleteTool"`
}

// Defaults sets the default values on the unset fields.
func (p *McpServerPolicy) Defaults() {
	if p.SandboxMaxLifetimeSeconds == 0 {
		p.SandboxMaxLifetimeSeconds = DefaultMcpSandboxMaxLifetimeSeconds
	}
	if p.SandboxMaxIdleTimeSeconds == 0 {
		p.SandboxMaxIdleTimeSeconds = DefaultMcpSandboxMaxIdleTimeSeconds
	}
}

// McpServer is an MCP server resource.
type McpServer struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CreatedAt        string          `json:"createdAt"`
	DefaultMcpServer bool            `json:"defaultMcpServer"`
	ProjectID        string          `json:"projectId"`
	Policy           McpServerPolicy `json:"policy"`
	CurrentSandboxID string          `json:"currentSandboxId,omitempty"`
}

// CreateMcpServerRequest is the request to create an MCP server.
type CreateMcpServerRequest struct {
	McpServerPolicy
	Name      string `json:"name"`
	ProjectID string `json:"projectId,omitempty"`
}

// Validate checks the request is valid.
func (r CreateMcpServerRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("mcp server name is required: %w", ErrNotValid)
	}
	if r.SandboxMaxLifetimeSeconds < 0 || r.SandboxMaxIdleTimeSeconds < 0 {
		return fmt.Errorf("mcp server policy times must not be negative: %w", ErrNotValid)
	}
	return nil
}

// SetMcpServerSandboxRequest is the request to bind an MCP server to a sandbox.
type SetMcpServerSandboxRequest struct {
	SandboxID string `json:"sandboxId"`
}
