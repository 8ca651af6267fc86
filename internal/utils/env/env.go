package env

import (
	"fmt"
	"net/textproto"
	"os"
	"regexp"
	"strings"
)

var headerKeyRegexp = regexp.MustCompile("^[!#$%&'*+.^_`|~0-9A-Za-z-]+$")

// ParseHeaderSpecs parses HTTP header specs. A "KEY=VALUE" spec sets the
// value, a "KEY" spec takes the value from the environment variable with the
// same name. Later specs override earlier ones, keys are canonicalized.
func ParseHeaderSpecs(specs []string) (map[string]string, error) {
	headers := make(map[string]string, len(specs))

	for _, spec := range specs {
		if spec == "" {
			return nil, fmt.Errorf("header spec cannot be empty")
		}

		key, value, ok := strings.Cut(spec, "=")
		if !isValidKey(key) {
			return nil, fmt.Errorf("invalid header key %q", key)
		}
		if !ok {
			v, found := os.LookupEnv(key)
			if !found {
				return nil, fmt.Errorf("environment variable %q is not set", key)
			}
			value = v
		}

		headers[textproto.CanonicalMIMEHeaderKey(key)] = value
	}

	return headers, nil
}

// MergeMaps returns a new map with base values overridden by override ones.
func MergeMaps(base map[string]string, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}

	return merged
}

func isValidKey(k string) bool {
	return headerKeyRegexp.MatchString(k)
}
