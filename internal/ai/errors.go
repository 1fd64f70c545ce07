package ai

import "errors"

// ErrUnavailable means the provider is not configured or refused the call.
// Callers treat it as a degraded path, not a failure.
var ErrUnavailable = errors.New("ai provider unavailable")
