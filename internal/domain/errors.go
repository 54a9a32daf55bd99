package domain

import "errors"

// ErrInvalidParameter marks inputs rejected before any simulation work starts.
var ErrInvalidParameter = errors.New("invalid parameter")
