package lybic_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/pkg/lybic"
)

type response struct {
	status      int
	contentType string
	body        string
}

// fakeAPI is a Lybic API test server answering fixed responses per "METHOD path".
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]response
	calls  map[string][]string
}

func newFakeAPI(t *testing.T, routes map[string]response) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{routes: routes, calls: map[string][]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.calls[key] = append(f.calls[key], string(body))
		res, ok := f.routes[key]
		f.mu.Unlock()

		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"nomos.not_found","message":"Route not found"}`))
			return
		}
		if res.contentType == "" {
			res.contentType = "application/json"
		}
		if res.status == 0 {
			res.status = http.StatusOK
		}
		w.Header().Set("Content-Type", res.contentType)
		w.WriteHeader(res.status)
		_, _ = w.Write([]byte(res.body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) bodies(key string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func newTestClient(t *testing.T, srv *httptest.Server) *lybic.Client {
	t.Helper()

	client, err := lybic.New(context.Background(), lybic.Config{
		OrgID:    "ORG-1",
		APIKey:   "sk-test",
		Endpoint: srv.URL + "/",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg    func(t *testing.T) lybic.Config
		expErr bool
	}{
		"A config with org and API key should work.": {
			cfg: func(t *testing.T) lybic.Config { return lybic.Config{OrgID: "ORG-1", APIKey: "sk"} },
		},
		"A trial session token should replace the API key.": {
			cfg: func(t *testing.T) lybic.Config {
				return lybic.Config{OrgID: "ORG-1", ExtraHeaders: map[string]string{"X-Trial-Session-Token": "tk"}}
			},
		},
		"A journal path should open a SQLite journal.": {
			cfg: func(t *testing.T) lybic.Config {
				return lybic.Config{OrgID: "ORG-1", APIKey: "sk", JournalPath: filepath.Join(t.TempDir(), "j", "journal.db")}
			},
		},
		"A missing org should fail.": {
			cfg:    func(t *testing.T) lybic.Config { return lybic.Config{APIKey: "sk"} },
			expErr: true,
		},
		"A missing API key should fail.": {
			cfg:    func(t *testing.T) lybic.Config { return lybic.Config{OrgID: "ORG-1"} },
			expErr: true,
		},
		"Negative retries should fail.": {
			cfg:    func(t *testing.T) lybic.Config { return lybic.Config{OrgID: "ORG-1", APIKey: "sk", MaxRetries: -1} },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, err := lybic.New(context.Background(), test.cfg(t))
			if test.expErr {
				assert.ErrorIs(t, err, lybic.ErrNotValid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, lybic.DefaultEndpoint, client.Endpoint())
			assert.NoError(t, client.Close())
		})
	}
}

func TestClientSandboxes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	f, srv := newFakeAPI(t, map[string]response{
		"GET /api/orgs/ORG-1/sandboxes":        {body: `[{"id":"SBX-1","name":"a","shape":{"name":"s","os":"Windows"}}]`},
		"POST /api/orgs/ORG-1/sandboxes":       {body: `{"sandbox":{"id":"SBX-2","name":"sandbox"},"connectDetails":{"roomId":"r"}}`},
		"DELETE /api/orgs/ORG-1/sandboxes/SBX-2": {},
	})
	client := newTestClient(t, srv)
	ctx := context.Background()

	sbs, err := client.ListSandboxes(ctx)
	require.NoError(err)
	require.Len(sbs, 1)
	assert.Equal(lybic.SandboxOSWindows, sbs[0].Shape.OS)

	sb, err := client.CreateSandbox(ctx, lybic.CreateSandboxRequest{})
	require.NoError(err)
	assert.Equal("SBX-2", sb.Sandbox.ID)
	assert.JSONEq(`{"name":"sandbox","maxLifeSeconds":3600}`, f.bodies("POST /api/orgs/ORG-1/sandboxes")[0])

	require.NoError(client.DeleteSandbox(ctx, "SBX-2"))

	// Not found.
	_, err = client.GetSandbox(ctx, "SBX-404")
	assert.ErrorIs(err, lybic.ErrNotFound)
	var apiErr *lybic.APIError
	require.True(errors.As(err, &apiErr))
	assert.Equal("nomos.not_found", apiErr.Code)

	// Invalid input never reaches the API.
	_, err = client.CreateSandbox(ctx, lybic.CreateSandboxRequest{MaxLifeSeconds: 100000})
	assert.ErrorIs(err, lybic.ErrNotValid)
}

func TestClientExecuteAction(t *testing.T) {
	tests := map[string]struct {
		exec      func(c *lybic.Client) (*lybic.ActionResult, error)
		expErrIs  error
		expCalled string
	}{
		"A computer action should be sent to the computer use endpoint.": {
			exec: func(c *lybic.Client) (*lybic.ActionResult, error) {
				return c.ExecuteAction(context.Background(), "SBX-1", lybic.ExecuteActionRequest{
					Action: &lybic.MouseClickAction{X: lybic.Px(10), Y: lybic.Frac(1, 2), Button: lybic.MouseButtonLeft},
				})
			},
			expCalled: "POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/computer-use",
		},
		"A mobile only action should be sent to the mobile use endpoint.": {
			exec: func(c *lybic.Client) (*lybic.ActionResult, error) {
				return c.ExecuteAction(context.Background(), "SBX-1", lybic.ExecuteActionRequest{
					Action: &lybic.AndroidHomeAction{},
				})
			},
			expCalled: "POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/mobile-use",
		},
		"A mobile action on the computer use endpoint should fail.": {
			exec: func(c *lybic.Client) (*lybic.ActionResult, error) {
				return c.ExecuteComputerUseAction(context.Background(), "SBX-1", lybic.ExecuteActionRequest{
					Action: &lybic.AndroidHomeAction{},
				})
			},
			expErrIs: lybic.ErrUnknownActionType,
		},
		"An action with missing fields should fail.": {
			exec: func(c *lybic.Client) (*lybic.ActionResult, error) {
				return c.ExecuteAction(context.Background(), "SBX-1", lybic.ExecuteActionRequest{
					Action: &lybic.MouseMoveAction{},
				})
			},
			expErrIs: lybic.ErrInvalidActionPayload,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f, srv := newFakeAPI(t, map[string]response{
				"POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/computer-use": {body: `{"screenShot":"https://s3/1.webp"}`},
				"POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/mobile-use":   {body: `{"screenShot":"https://s3/2.webp"}`},
			})
			client := newTestClient(t, srv)

			res, err := test.exec(client)
			if test.expErrIs != nil {
				assert.ErrorIs(t, err, test.expErrIs)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.ScreenShot)

			bodies := f.bodies(test.expCalled)
			require.Len(t, bodies, 1)
			var sent struct {
				Action map[string]any `json:"action"`
			}
			require.NoError(t, json.Unmarshal([]byte(bodies[0]), &sent))
			callID, _ := sent.Action["callId"].(string)
			assert.NotEmpty(t, callID)

			// Executed actions are in the journal.
			rec, err := client.GetActionByCallID(context.Background(), callID)
			require.NoError(t, err)
			assert.Equal(t, lybic.ActionRecordStatusDone, rec.Status)
			assert.Equal(t, "SBX-1", rec.SandboxID)
		})
	}
}

func TestClientActionHistoryFailedAction(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]response{
		"POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/computer-use": {status: http.StatusBadGateway, contentType: "text/html", body: "<html>bad gateway</html>"},
	})
	client := newTestClient(t, srv)
	ctx := context.Background()

	_, err := client.ExecuteAction(ctx, "SBX-1", lybic.ExecuteActionRequest{Action: &lybic.ScreenshotAction{}})
	var internalErr *lybic.InternalError
	require.True(t, errors.As(err, &internalErr))
	assert.Equal(t, http.StatusBadGateway, internalErr.StatusCode)

	records, err := client.ActionHistory(ctx, lybic.ActionRecordFilter{SandboxID: "SBX-1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, lybic.ActionRecordStatusFailed, records[0].Status)
	assert.Equal(t, lybic.ActionTypeScreenshot, records[0].ActionType)
}

func TestClientStreamShell(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]response{
		"POST /api/orgs/ORG-1/sandboxes/SBX-1/shell/stream": {
			contentType: "text/event-stream",
			body:        "data: {\"stdout\":\"aGVsbG8=\"}\n\ndata: not json\n\ndata: {\"stderr\":\"b29wcw==\"}\n\ndata: {\"end\":true}\n\n",
		},
	})
	client := newTestClient(t, srv)

	st, err := client.StreamShell(context.Background(), "SBX-1", lybic.ShellSessionRequest{Command: "echo hello"})
	require.NoError(t, err)
	defer st.Close()

	var got []lybic.StreamEvent
	for {
		ev, err := st.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	exp := []lybic.StreamEvent{
		{Type: lybic.StreamEventStdout, Data: "hello"},
		{Type: lybic.StreamEventStderr, Data: "oops"},
		{Type: lybic.StreamEventEnd},
	}
	assert.Equal(t, exp, got)
}

func TestClientRunScript(t *testing.T) {
	f, srv := newFakeAPI(t, map[string]response{
		"POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/computer-use": {body: `{}`},
	})
	client := newTestClient(t, srv)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "script.yaml")
	err := os.WriteFile(path, []byte(`
sandboxId: SBX-1
includeScreenShot: false
actions:
  - type: keyboard:type
    content: hello
  - type: keyboard:hotkey
    keys: enter
`), 0o600)
	require.NoError(t, err)

	s, err := lybic.LoadActionScript(ctx, path, lybic.ActionUnionComputerUse)
	require.NoError(t, err)

	steps, err := client.RunScript(ctx, *s, lybic.RunScriptOpts{})
	require.NoError(t, err)
	assert.Len(t, steps, 2)
	assert.Len(t, f.bodies("POST /api/orgs/ORG-1/sandboxes/SBX-1/actions/computer-use"), 2)
}

func TestDecodeAction(t *testing.T) {
	tests := map[string]struct {
		payload  string
		decode   func([]byte) (lybic.Action, error)
		expType  string
		expErrIs error
	}{
		"A valid payload should decode.": {
			payload: `{"type":"mouse:click","x":{"type":"px","value":100},"y":{"type":"px","value":100},"button":1}`,
			decode:  lybic.DecodeAction,
			expType: lybic.ActionTypeMouseClick,
		},
		"An unknown type should fail.": {
			payload:  `{"type":"mouse:teleport"}`,
			decode:   lybic.DecodeAction,
			expErrIs: lybic.ErrUnknownActionType,
		},
		"A computer action should not decode as mobile use.": {
			payload:  `{"type":"mouse:move","x":{"type":"px","value":1},"y":{"type":"px","value":1}}`,
			decode:   lybic.DecodeMobileUseAction,
			expErrIs: lybic.ErrUnknownActionType,
		},
		"A payload with missing fields should fail.": {
			payload:  `{"type":"mouse:move"}`,
			decode:   lybic.DecodeComputerUseAction,
			expErrIs: lybic.ErrInvalidActionPayload,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := test.decode([]byte(test.payload))
			if test.expErrIs != nil {
				assert.ErrorIs(t, err, test.expErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expType, a.Type())
		})
	}
}

func TestGUIControllerUnsupportedKeys(t *testing.T) {
	_, srv := newFakeAPI(t, nil)
	client := newTestClient(t, srv)

	ctrl, err := client.NewGUIController("SBX-1")
	require.NoError(t, err)
	defer ctrl.Close()

	assert.ErrorIs(t, ctrl.KeyDown(context.Background(), "shift"), lybic.ErrUnsupportedOperation)
	assert.ErrorIs(t, ctrl.KeyUp(context.Background(), "shift"), lybic.ErrUnsupportedOperation)
}

func TestMcpServerURL(t *testing.T) {
	_, srv := newFakeAPI(t, nil)
	client := newTestClient(t, srv)

	assert.Equal(t, srv.URL+"/mcp/MCP-1", client.McpServerURL("MCP-1"))
}
