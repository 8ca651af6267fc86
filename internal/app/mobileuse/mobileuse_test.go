package mobileuse_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/api/apimock"
	"github.com/lybic/lybic-sdk-go/internal/app/mobileuse"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

type sandboxManagerMock struct {
	mock.Mock
}

func (m *sandboxManagerMock) Get(ctx context.Context, sandboxID string) (*model.SandboxDetails, error) {
	args := m.Called(ctx, sandboxID)
	d, _ := args.Get(0).(*model.SandboxDetails)
	return d, args.Error(1)
}

func (m *sandboxManagerMock) ExecuteProcess(ctx context.Context, sandboxID string, req model.ProcessRequest) (*model.ProcessResult, error) {
	args := m.Called(ctx, sandboxID, req)
	r, _ := args.Get(0).(*model.ProcessResult)
	return r, args.Error(1)
}

func details(os model.SandboxOS) *model.SandboxDetails {
	return &model.SandboxDetails{Sandbox: model.Sandbox{ID: "SBX-1", Shape: &model.SandboxShape{OS: os}}}
}

func newService(t *testing.T, sm *sandboxManagerMock) *mobileuse.Service {
	svc, err := mobileuse.NewService(mobileuse.ServiceConfig{Requester: apimock.NewMockRequester(t), Sandboxes: sm})
	require.NoError(t, err)
	return svc
}

func TestServiceSetGPSLocation(t *testing.T) {
	tests := map[string]struct {
		loc    model.GPSLocation
		mock   func(m *sandboxManagerMock)
		expErr error
	}{
		"Setting the location on Android should run the settings command.": {
			loc: model.GPSLocation{Latitude: 39.9042, Longitude: 116.4074},
			mock: func(m *sandboxManagerMock) {
				m.On("Get", mock.Anything, "SBX-1").Once().Return(details(model.SandboxOSAndroid), nil)
				m.On("ExecuteProcess", mock.Anything, "SBX-1", model.ProcessRequest{
					Executable: "settings",
					Args:       []string{"put", "global", "gps_inject_info", "39.904200,116.407400"},
				}).Once().Return(&model.ProcessResult{}, nil)
			},
		},
		"Setting the location on a non Android sandbox should fail.": {
			loc: model.GPSLocation{Latitude: 1, Longitude: 1},
			mock: func(m *sandboxManagerMock) {
				m.On("Get", mock.Anything, "SBX-1").Once().Return(details(model.SandboxOS("Linux")), nil)
			},
			expErr: model.ErrUnsupportedOperation,
		},
		"An invalid location should fail.": {
			loc:    model.GPSLocation{Latitude: 91},
			mock:   func(m *sandboxManagerMock) {},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			sm := &sandboxManagerMock{}
			test.mock(sm)

			_, err := newService(t, sm).SetGPSLocation(context.Background(), "SBX-1", test.loc)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
			sm.AssertExpectations(t)
		})
	}
}

func TestInstallScript(t *testing.T) {
	tests := map[string]struct {
		sources   []model.APKSource
		expScript string
	}{
		"Local APKs should only be installed.": {
			sources: []model.APKSource{model.LocalAPK("/data/local/tmp/app.apk")},
			expScript: "#!/system/bin/sh\n" +
				"pm install -r '/data/local/tmp/app.apk'",
		},
		"Remote APKs should be downloaded, installed and removed.": {
			sources: []model.APKSource{
				model.LocalAPK("/data/a.apk"),
				model.RemoteAPK("https://cdn.example.com/apps/b?token=x", map[string]string{"X-B": "2", "Authorization": "Bearer t"}),
			},
			expScript: "#!/system/bin/sh\n" +
				"curl -L -o '/sdcard/Download/b.apk' 'https://cdn.example.com/apps/b?token=x' -H 'Authorization: Bearer t' -H 'X-B: 2'\n" +
				"pm install -r '/sdcard/Download/b.apk'\n" +
				"pm install -r '/data/a.apk'\n" +
				"rm -f '/sdcard/Download/b.apk'",
		},
		"Single quotes should be escaped.": {
			sources: []model.APKSource{model.LocalAPK("/data/it's.apk")},
			expScript: "#!/system/bin/sh\n" +
				`pm install -r '/data/it'\''s.apk'`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expScript, mobileuse.InstallScript(test.sources))
		})
	}
}

func TestServiceInstallAPK(t *testing.T) {
	sm := &sandboxManagerMock{}
	sm.On("Get", mock.Anything, "SBX-1").Once().Return(details(model.SandboxOSAndroid), nil)
	sm.On("ExecuteProcess", mock.Anything, "SBX-1", mock.Anything).Once().Run(func(args mock.Arguments) {
		req := args.Get(2).(model.ProcessRequest)
		assert.Equal(t, "sh", req.Executable)
		require.Len(t, req.Args, 2)
		assert.Equal(t, "-c", req.Args[0])
		assert.Equal(t, `nohup sh -c '#!/system/bin/sh
pm install -r '\''/data/a.apk'\''' >/dev/null 2>&1 &`, req.Args[1])
	}).Return(&model.ProcessResult{}, nil)

	svc := newService(t, sm)
	err := svc.InstallAPK(context.Background(), "SBX-1", []model.APKSource{model.LocalAPK("/data/a.apk")})
	require.NoError(t, err)
	sm.AssertExpectations(t)

	err = svc.InstallAPK(context.Background(), "SBX-1", nil)
	assert.ErrorIs(t, err, model.ErrNotValid)

	err = svc.InstallAPK(context.Background(), "SBX-1", []model.APKSource{{}})
	assert.ErrorIs(t, err, model.ErrNotValid)
}

func TestServiceParseLLMOutput(t *testing.T) {
	m := apimock.NewMockRequester(t)
	m.On("Do", mock.Anything, http.MethodPost, "/api/mobile-use/parse/ui-tars", model.ParseTextRequest{TextContent: "tap"}, mock.Anything).Once().
		Run(apimock.SetOut(map[string]any{"actions": []map[string]any{
			{"type": "touch:tap", "x": map[string]any{"type": "px", "value": 1}, "y": map[string]any{"type": "px", "value": 2}},
			{"type": "keyboard:type", "content": "hi"},
		}})).Return(nil)

	svc, err := mobileuse.NewService(mobileuse.ServiceConfig{Requester: m, Sandboxes: &sandboxManagerMock{}})
	require.NoError(t, err)

	res, err := svc.ParseLLMOutput(context.Background(), model.ParseModelUITars, "tap")
	require.NoError(t, err)
	require.Len(t, res.Actions, 2)
	assert.Equal(t, model.ActionTypeTouchTap, res.Actions[0].Type())
	assert.Equal(t, model.ActionTypeKeyboardType, res.Actions[1].Type())
}
