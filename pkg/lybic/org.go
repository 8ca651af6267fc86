package lybic

import "context"

// Stats returns the organization resource counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	s, err := c.org.Stats(ctx)
	return s, mapError(err)
}

// ListProjects returns the projects of the organization.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	ps, err := c.org.ListProjects(ctx)
	return ps, mapError(err)
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	p, err := c.org.CreateProject(ctx, CreateProjectRequest{Name: name})
	return p, mapError(err)
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return mapError(c.org.DeleteProject(ctx, projectID))
}

// ListMcpServers returns the MCP servers of the organization.
func (c *Client) ListMcpServers(ctx context.Context) ([]McpServer, error) {
	ss, err := c.org.ListMcpServers(ctx)
	return ss, mapError(err)
}

// CreateMcpServer creates a new MCP server, unset policy times default to one hour.
func (c *Client) CreateMcpServer(ctx context.Context, req CreateMcpServerRequest) (*McpServer, error) {
	s, err := c.org.CreateMcpServer(ctx, req)
	return s, mapError(err)
}

// GetDefaultMcpServer returns the default MCP server of the organization.
func (c *Client) GetDefaultMcpServer(ctx context.Context) (*McpServer, error) {
	s, err := c.org.GetDefaultMcpServer(ctx)
	return s, mapError(err)
}

// DeleteMcpServer deletes an MCP server.
func (c *Client) DeleteMcpServer(ctx context.Context, mcpServerID string) error {
	return mapError(c.org.DeleteMcpServer(ctx, mcpServerID))
}

// SetMcpServerSandbox binds an MCP server to a sandbox.
func (c *Client) SetMcpServerSandbox(ctx context.Context, mcpServerID, sandboxID string) error {
	return mapError(c.org.SetMcpServerSandbox(ctx, mcpServerID, sandboxID))
}

// McpServerURL returns the URL MCP clients use to connect to an MCP server.
func (c *Client) McpServerURL(mcpServerID string) string {
	return c.org.McpServerURL(mcpServerID)
}
