package gateway

import "errors"

var (
	// ErrUnavailable means the gateway could not be reached at the
	// transport level. Non-2xx responses are NOT errors; see Result.OK.
	ErrUnavailable = errors.New("server unavailable")
)
