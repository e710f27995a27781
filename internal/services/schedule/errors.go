package schedule

import "errors"

// Resolver errors
var (
	ErrUnknownCountry  = errors.New("unknown country")
	ErrInvalidCategory = errors.New("invalid category")
)
