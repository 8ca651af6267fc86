package apimock

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// SetOut returns a mock Run function that fills the `out` argument of
// Requester.Do with the JSON representation of body.
func SetOut(body any) func(mock.Arguments) {
	return func(args mock.Arguments) {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		if err := json.Unmarshal(data, args.Get(4)); err != nil {
			panic(err)
		}
	}
}
