package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

func TestNewLength(t *testing.T) {
	tests := map[string]struct {
		new    func() (model.Length, error)
		expErr bool
	}{
		"A positive pixel length should be valid.": {
			new: func() (model.Length, error) { return model.NewPixelLength(100) },
		},
		"A zero pixel length should be valid.": {
			new: func() (model.Length, error) { return model.NewPixelLength(0) },
		},
		"A negative pixel length should fail.": {
			new:    func() (model.Length, error) { return model.NewPixelLength(-1) },
			expErr: true,
		},
		"A fractional length should be valid.": {
			new: func() (model.Length, error) { return model.NewFractionalLength(1, 2) },
		},
		"A fractional length with a zero denominator should fail.": {
			new:    func() (model.Length, error) { return model.NewFractionalLength(1, 0) },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := test.new()
			if test.expErr {
				assert.ErrorIs(err, model.ErrNotValid)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestLengthResolve(t *testing.T) {
	tests := map[string]struct {
		length    model.Length
		dimension int
		exp       int
	}{
		"Pixel lengths should ignore the dimension.": {
			length:    model.Px(100),
			dimension: 1920,
			exp:       100,
		},
		"Half of a dimension should be resolved.": {
			length:    model.Frac(1, 2),
			dimension: 1920,
			exp:       960,
		},
		"Fractional lengths should be rounded to the nearest pixel.": {
			length:    model.Frac(1, 3),
			dimension: 1000,
			exp:       333,
		},
		"Fractional lengths should round half away from zero.": {
			length:    model.Frac(1, 2),
			dimension: 5,
			exp:       3,
		},
		"Full dimension should be resolved.": {
			length:    model.Frac(3, 3),
			dimension: 1080,
			exp:       1080,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(test.exp, test.length.Resolve(test.dimension))
		})
	}
}

func TestLengthEqual(t *testing.T) {
	assert := assert.New(t)

	assert.True(model.Px(100).Equal(model.Px(100)))
	assert.False(model.Px(100).Equal(model.Px(101)))
	assert.True(model.Frac(1, 2).Equal(model.Frac(1, 2)))
	assert.False(model.Frac(1, 2).Equal(model.Frac(2, 4)))
	assert.False(model.Px(100).Equal(model.Frac(100, 1)))
}

func TestLengthJSON(t *testing.T) {
	tests := map[string]struct {
		json      string
		expLength model.Length
		expErr    bool
	}{
		"A pixel length should be decoded.": {
			json:      `{"type":"px","value":100}`,
			expLength: model.Px(100),
		},
		"A fractional length should be decoded.": {
			json:      `{"type":"/","numerator":1,"denominator":2}`,
			expLength: model.Frac(1, 2),
		},
		"Unknown fields should be ignored.": {
			json:      `{"type":"px","value":5,"unit":"css"}`,
			expLength: model.Px(5),
		},
		"A negative pixel length should fail.": {
			json:   `{"type":"px","value":-3}`,
			expErr: true,
		},
		"A zero denominator should fail.": {
			json:   `{"type":"/","numerator":1,"denominator":0}`,
			expErr: true,
		},
		"A missing pixel value should fail.": {
			json:   `{"type":"px"}`,
			expErr: true,
		},
		"A missing denominator should fail.": {
			json:   `{"type":"/","numerator":1}`,
			expErr: true,
		},
		"An unknown length type should fail.": {
			json:   `{"type":"%","value":10}`,
			expErr: true,
		},
		"A non object length should fail.": {
			json:   `100`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			var l model.Length
			err := json.Unmarshal([]byte(test.json), &l)
			if test.expErr {
				assert.Error(err)
				return
			}
			require.NoError(err)
			assert.True(test.expLength.Equal(l))

			// Encoding should give back an equivalent length.
			data, err := json.Marshal(l)
			require.NoError(err)
			var got model.Length
			require.NoError(json.Unmarshal(data, &got))
			assert.True(l.Equal(got))
		})
	}
}

func TestLengthMarshalJSON(t *testing.T) {
	assert := assert.New(t)

	data, err := json.Marshal(model.Px(100))
	assert.NoError(err)
	assert.JSONEq(`{"type":"px","value":100}`, string(data))

	data, err = json.Marshal(model.Frac(1, 2))
	assert.NoError(err)
	assert.JSONEq(`{"type":"/","numerator":1,"denominator":2}`, string(data))

	_, err = json.Marshal(model.Length{})
	assert.Error(err)
}
