package script_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/app/script"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

type executorMock struct {
	mock.Mock
}

func (m *executorMock) ExecuteAction(ctx context.Context, sandboxID string, req model.ExecuteActionRequest) (*model.ActionResult, error) {
	args := m.Called(ctx, sandboxID, req)
	r, _ := args.Get(0).(*model.ActionResult)
	return r, args.Error(1)
}

func isType(typ string) any {
	return mock.MatchedBy(func(req model.ExecuteActionRequest) bool { return req.Action.Type() == typ })
}

func TestServiceRun(t *testing.T) {
	newScript := func() model.ActionScript {
		return model.ActionScript{
			SandboxID: "SBX-1",
			Actions: []model.Action{
				&model.WaitAction{Duration: 10},
				&model.KeyboardTypeAction{Content: "hi"},
				&model.ScreenshotAction{},
			},
		}
	}

	tests := map[string]struct {
		req      func() script.Request
		mock     func(m *executorMock)
		expSteps int
		expErr   bool
	}{
		"All actions should run in order on the script sandbox.": {
			req: func() script.Request { return script.Request{Script: newScript()} },
			mock: func(m *executorMock) {
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeWait)).Once().Return(&model.ActionResult{}, nil)
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeKeyboardType)).Once().Return(&model.ActionResult{}, nil)
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeScreenshot)).Once().Return(&model.ActionResult{ScreenShot: "u"}, nil)
			},
			expSteps: 3,
		},
		"The request sandbox should override the script one.": {
			req: func() script.Request { return script.Request{SandboxID: "SBX-2", Script: newScript()} },
			mock: func(m *executorMock) {
				m.On("ExecuteAction", mock.Anything, "SBX-2", mock.Anything).Times(3).Return(&model.ActionResult{}, nil)
			},
			expSteps: 3,
		},
		"A failed action should stop the script.": {
			req: func() script.Request { return script.Request{Script: newScript()} },
			mock: func(m *executorMock) {
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeWait)).Once().Return(&model.ActionResult{}, nil)
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeKeyboardType)).Once().Return(nil, fmt.Errorf("whatever"))
			},
			expSteps: 2,
			expErr:   true,
		},
		"A failed action should not stop the script when continuing on errors.": {
			req: func() script.Request { return script.Request{Script: newScript(), ContinueOnError: true} },
			mock: func(m *executorMock) {
				m.On("ExecuteAction", mock.Anything, "SBX-1", isType(model.ActionTypeWait)).Once().Return(nil, fmt.Errorf("whatever"))
				m.On("ExecuteAction", mock.Anything, "SBX-1", mock.Anything).Twice().Return(&model.ActionResult{}, nil)
			},
			expSteps: 3,
			expErr:   true,
		},
		"A script without sandbox should fail.": {
			req: func() script.Request {
				s := newScript()
				s.SandboxID = ""
				return script.Request{Script: s}
			},
			mock:   func(m *executorMock) {},
			expErr: true,
		},
		"A script with an invalid action should fail before running.": {
			req: func() script.Request {
				s := newScript()
				s.Actions = append(s.Actions, &model.MouseMoveAction{})
				return script.Request{Script: s}
			},
			mock:   func(m *executorMock) {},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &executorMock{}
			test.mock(m)

			svc, err := script.NewService(script.ServiceConfig{Executor: m})
			require.NoError(t, err)

			steps, err := svc.Run(context.Background(), test.req())
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, steps, test.expSteps)
			m.AssertExpectations(t)
		})
	}
}
