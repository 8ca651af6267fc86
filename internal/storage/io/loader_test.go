package io

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

func TestActionScriptYAMLRepository_GetActionScript(t *testing.T) {
	tests := map[string]struct {
		data   string
		union  model.ActionUnion
		exp    func(t *testing.T, s model.ActionScript)
		expErr error
	}{
		"A valid YAML script should be loaded.": {
			data: `
sandboxId: SBX-1
includeScreenShot: false
actions:
  - type: mouse:click
    x: {type: px, value: 100}
    y: {type: "/", numerator: 1, denominator: 2}
    button: 1
  - type: keyboard:type
    content: hello
    callId: my-call
  - type: wait
    duration: 500
`,
			union: model.ActionUnionComputerUse,
			exp: func(t *testing.T, s model.ActionScript) {
				assert.Equal(t, "SBX-1", s.SandboxID)
				require.NotNil(t, s.IncludeScreenShot)
				assert.False(t, *s.IncludeScreenShot)
				require.Len(t, s.Actions, 3)

				click, ok := s.Actions[0].(*model.MouseClickAction)
				require.True(t, ok)
				assert.Equal(t, model.Px(100), click.X)
				assert.Equal(t, model.Frac(1, 2), click.Y)
				assert.NotEmpty(t, click.CallID)

				assert.Equal(t, "my-call", s.Actions[1].GetCallID())
				assert.Equal(t, model.ActionTypeWait, s.Actions[2].Type())
			},
		},
		"A JSON script should be loaded.": {
			data:  `{"actions":[{"type":"touch:tap","x":{"type":"px","value":1},"y":{"type":"px","value":2}}]}`,
			union: model.ActionUnionMobileUse,
			exp: func(t *testing.T, s model.ActionScript) {
				require.Len(t, s.Actions, 1)
				assert.Equal(t, model.ActionTypeTouchTap, s.Actions[0].Type())
			},
		},
		"A script without actions should fail.": {
			data:   `sandboxId: SBX-1`,
			expErr: model.ErrNotValid,
		},
		"An action outside the union should fail.": {
			data: `
actions:
  - type: touch:tap
    x: {type: px, value: 1}
    y: {type: px, value: 2}
`,
			union:  model.ActionUnionComputerUse,
			expErr: model.ErrUnknownActionType,
		},
		"An invalid action should fail.": {
			data: `
actions:
  - type: mouse:move
    x: {type: px, value: 1}
`,
			union:  model.ActionUnionAll,
			expErr: model.ErrInvalidActionPayload,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewActionScriptYAMLRepository(fstest.MapFS{
				"script.yaml": &fstest.MapFile{Data: []byte(test.data)},
			})

			s, err := repo.GetActionScript(context.Background(), "script.yaml", test.union)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				return
			}
			require.NoError(t, err)
			test.exp(t, s)
		})
	}
}

func TestProfileYAMLRepository_GetProfile(t *testing.T) {
	tests := map[string]struct {
		fs         fstest.MapFS
		expProfile model.Profile
		expErr     bool
		expErrIs   error
	}{
		"A full profile should be loaded.": {
			fs: fstest.MapFS{"config.yaml": &fstest.MapFile{Data: []byte(`
org_id: org-1
api_key: key-1
endpoint: https://example.com
timeout: 30s
headers:
  X-Custom: v
journal_path: /tmp/journal.db
`)}},
			expProfile: model.Profile{
				OrgID:       "org-1",
				APIKey:      "key-1",
				Endpoint:    "https://example.com",
				Timeout:     30 * time.Second,
				Headers:     map[string]string{"X-Custom": "v"},
				JournalPath: "/tmp/journal.db",
			},
		},
		"An empty profile should be loaded.": {
			fs:         fstest.MapFS{"config.yaml": &fstest.MapFile{Data: []byte("---\n")}},
			expProfile: model.Profile{},
		},
		"A missing profile should return not found.": {
			fs:       fstest.MapFS{},
			expErr:   true,
			expErrIs: model.ErrNotFound,
		},
		"An invalid timeout should fail.": {
			fs:     fstest.MapFS{"config.yaml": &fstest.MapFile{Data: []byte("timeout: soon\n")}},
			expErr: true,
		},
		"A negative timeout should fail.": {
			fs:     fstest.MapFS{"config.yaml": &fstest.MapFile{Data: []byte("timeout: -1s\n")}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewProfileYAMLRepository(test.fs)

			p, err := repo.GetProfile(context.Background(), "config.yaml")
			if test.expErr {
				require.Error(t, err)
				if test.expErrIs != nil {
					assert.ErrorIs(t, err, test.expErrIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expProfile, p)
		})
	}
}
