package token

import "github.com/pkg/errors"

// ErrTokenRejected is wrapped by every Decode failure: expired, malformed,
// or carrying a bad signature. Callers that need to distinguish these cases
// should not; the lifecycle treats them all as "regenerate".
var ErrTokenRejected = errors.New("token rejected")
