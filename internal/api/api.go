// Package api is the HTTP transport of the Lybic API.
//
// It handles authentication headers, timeouts, retries of idempotent
// requests and the mapping of failed responses into typed errors.
package api

import (
	"fmt"
	"net/url"
)

//go:generate mockery --case underscore --output apimock --outpkg apimock --name Requester

var _ Requester = &Client{}

// Path formats an API path escaping every path segment argument.
func Path(format string, segments ...string) string {
	args := make([]any, 0, len(segments))
	for _, s := range segments {
		args = append(args, url.PathEscape(s))
	}
	return fmt.Sprintf(format, args...)
}
