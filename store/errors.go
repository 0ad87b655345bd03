package store

import "github.com/pkg/errors"

// ErrNotFound is returned when a session has no stored access token.
var ErrNotFound = errors.New("access token not found")
