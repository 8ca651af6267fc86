package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lybic/lybic-sdk-go/internal/log"
)

func TestCtxValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		expValues log.Kv
	}{
		"A context without values should return empty values.": {
			ctx:       context.Background,
			expValues: log.Kv{},
		},

		"Values set on the context should be returned.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"sandbox": "sbx-1"})
			},
			expValues: log.Kv{"sandbox": "sbx-1"},
		},

		"Nested values should be merged and overridden by the newest ones.": {
			ctx: func() context.Context {
				ctx := log.CtxWithValues(context.Background(), log.Kv{"sandbox": "sbx-1", "org": "org-1"})
				return log.CtxWithValues(ctx, log.Kv{"sandbox": "sbx-2"})
			},
			expValues: log.Kv{"sandbox": "sbx-2", "org": "org-1"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(test.expValues, log.ValuesFromCtx(test.ctx()))
		})
	}
}
