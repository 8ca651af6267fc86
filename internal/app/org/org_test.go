package org_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/api/apimock"
	"github.com/lybic/lybic-sdk-go/internal/app/org"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

func newService(t *testing.T, m *apimock.MockRequester) *org.Service {
	svc, err := org.NewService(org.ServiceConfig{Requester: m, OrgID: "org-1", Endpoint: "https://api.example.com"})
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	_, err := org.NewService(org.ServiceConfig{OrgID: "org-1"})
	assert.Error(t, err)

	_, err = org.NewService(org.ServiceConfig{Requester: &apimock.MockRequester{}})
	assert.Error(t, err)
}

func TestServiceStats(t *testing.T) {
	m := apimock.NewMockRequester(t)
	m.On("Do", mock.Anything, http.MethodGet, "/api/orgs/org-1/stats", nil, mock.Anything).Once().
		Run(apimock.SetOut(map[string]any{"mcpServers": 1, "sandboxes": 2, "projects": 3})).Return(nil)

	stats, err := newService(t, m).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Stats{McpServers: 1, Sandboxes: 2, Projects: 3}, *stats)
}

func TestServiceProjects(t *testing.T) {
	tests := map[string]struct {
		run    func(ctx context.Context, svc *org.Service) error
		mock   func(m *apimock.MockRequester)
		expErr error
	}{
		"Listing projects should decode them.": {
			mock: func(m *apimock.MockRequester) {
				m.On("Do", mock.Anything, http.MethodGet, "/api/orgs/org-1/projects", nil, mock.Anything).Once().
					Run(apimock.SetOut([]map[string]any{{"id": "p1", "name": "one", "defaultProject": true}})).Return(nil)
			},
			run: func(ctx context.Context, svc *org.Service) error {
				ps, err := svc.ListProjects(ctx)
				if err != nil {
					return err
				}
				if len(ps) != 1 || !ps[0].DefaultProject {
					return fmt.Errorf("unexpected projects: %v", ps)
				}
				return nil
			},
		},
		"Creating a project should send its name.": {
			mock: func(m *apimock.MockRequester) {
				m.On("Do", mock.Anything, http.MethodPost, "/api/orgs/org-1/projects", model.CreateProjectRequest{Name: "new"}, mock.Anything).Once().
					Run(apimock.SetOut(map[string]any{"id": "p2", "name": "new"})).Return(nil)
			},
			run: func(ctx context.Context, svc *org.Service) error {
				_, err := svc.CreateProject(ctx, model.CreateProjectRequest{Name: "new"})
				return err
			},
		},
		"Creating a project without name should fail.": {
			mock: func(m *apimock.MockRequester) {},
			run: func(ctx context.Context, svc *org.Service) error {
				_, err := svc.CreateProject(ctx, model.CreateProjectRequest{})
				return err
			},
			expErr: model.ErrNotValid,
		},
		"Deleting a project should call the API.": {
			mock: func(m *apimock.MockRequester) {
				m.On("Do", mock.Anything, http.MethodDelete, "/api/orgs/org-1/projects/p1", nil, nil).Once().Return(nil)
			},
			run: func(ctx context.Context, svc *org.Service) error {
				return svc.DeleteProject(ctx, "p1")
			},
		},
		"Deleting a project without id should fail.": {
			mock: func(m *apimock.MockRequester) {},
			run: func(ctx context.Context, svc *org.Service) error {
				return svc.DeleteProject(ctx, "")
			},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := apimock.NewMockRequester(t)
			test.mock(m)

			err := test.run(context.Background(), newService(t, m))
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceMcpServers(t *testing.T) {
	ctx := context.Background()
	m := apimock.NewMockRequester(t)
	svc := newService(t, m)

	expCreate := model.CreateMcpServerRequest{
		Name: "mcp",
		McpServerPolicy: model.McpServerPolicy{
			SandboxMaxLifetimeSeconds: 3600,
			SandboxMaxIdleTimeSeconds: 600,
		},
	}
	m.On("Do", mock.Anything, http.MethodPost, "/api/orgs/org-1/mcp-servers", expCreate, mock.Anything).Once().
		Run(apimock.SetOut(map[string]any{"id": "mcp-1", "name": "mcp"})).Return(nil)
	m.On("Do", mock.Anything, http.MethodGet, "/api/orgs/org-1/mcp-servers", nil, mock.Anything).Once().
		Run(apimock.SetOut([]map[string]any{{"id": "mcp-1"}})).Return(nil)
	m.On("Do", mock.Anything, http.MethodGet, "/api/orgs/org-1/mcp-servers/default", nil, mock.Anything).Once().
		Run(apimock.SetOut(map[string]any{"id": "mcp-0", "defaultMcpServer": true})).Return(nil)
	m.On("Do", mock.Anything, http.MethodPost, "/api/orgs/org-1/mcp-servers/mcp-1/sandbox", model.SetMcpServerSandboxRequest{SandboxID: "SBX-1"}, nil).Once().Return(nil)
	m.On("Do", mock.Anything, http.MethodDelete, "/api/orgs/org-1/mcp-servers/mcp-1", nil, nil).Once().Return(nil)

	srv, err := svc.CreateMcpServer(ctx, model.CreateMcpServerRequest{
		Name:            "mcp",
		McpServerPolicy: model.McpServerPolicy{SandboxMaxIdleTimeSeconds: 600},
	})
	require.NoError(t, err)
	assert.Equal(t, "mcp-1", srv.ID)

	all, err := svc.ListMcpServers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	def, err := svc.GetDefaultMcpServer(ctx)
	require.NoError(t, err)
	assert.True(t, def.DefaultMcpServer)

	require.NoError(t, svc.SetMcpServerSandbox(ctx, "mcp-1", "SBX-1"))
	assert.ErrorIs(t, svc.SetMcpServerSandbox(ctx, "mcp-1", ""), model.ErrNotValid)
	require.NoError(t, svc.DeleteMcpServer(ctx, "mcp-1"))

	assert.Equal(t, "https://api.example.com/mcp/mcp-1", svc.McpServerURL("mcp-1"))
}
