package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/utils/env"
)

func TestParseHeaderSpecs(t *testing.T) {
	t.Setenv("X_FROM_HOST", "host-value")

	tests := map[string]struct {
		specs      []string
		expHeaders map[string]string
		expErr     bool
	}{
		"KEY=VALUE should parse.": {
			specs:      []string{"x-trial-session-token=abc"},
			expHeaders: map[string]string{"X-Trial-Session-Token": "abc"},
		},
		"Values can have equal signs.": {
			specs:      []string{"Authorization=Bearer a=b"},
			expHeaders: map[string]string{"Authorization": "Bearer a=b"},
		},
		"KEY should inherit from host.": {
			specs:      []string{"X_FROM_HOST"},
			expHeaders: map[string]string{"X_from_host": "host-value"},
		},
		"Later entries should override earlier ones.": {
			specs:      []string{"x-foo=one", "X-Foo=two"},
			expHeaders: map[string]string{"X-Foo": "two"},
		},
		"Missing inherited var should fail.": {
			specs:  []string{"DOES_NOT_EXIST"},
			expErr: true,
		},
		"Invalid key should fail.": {
			specs:  []string{"bad key=value"},
			expErr: true,
		},
		"Empty spec should fail.": {
			specs:  []string{""},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			headers, err := env.ParseHeaderSpecs(test.specs)

			if test.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expHeaders, headers)
		})
	}
}

func TestMergeMaps(t *testing.T) {
	got := env.MergeMaps(map[string]string{"a": "1", "b": "2"}, map[string]string{"b": "3"})
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, got)
	assert.Equal(t, map[string]string{}, env.MergeMaps(nil, nil))
}
