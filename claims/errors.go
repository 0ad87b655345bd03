package claims

import "github.com/pkg/errors"

// ErrAnonymousAccount is returned when domain claims are requested for an
// account that is not authenticated.
var ErrAnonymousAccount = errors.New("domain claims require an authenticated account")
