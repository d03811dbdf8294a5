package shopify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredentials = errors.New("shop domain or access token is not configured")
	ErrCountUnavailable   = errors.New("order count missing in upstream response")
)

// RequestError is a non-success response from the platform. The body is
// kept verbatim so the operator can see what the platform actually said.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Body)
}

// JobError carries bulk-job validation or execution errors reported by the
// platform, verbatim. Never retried.
type JobError struct {
	Messages []string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("bulk operation error: %s", strings.Join(e.Messages, "; "))
}
