package copyright

import "errors"

// Sentinel errors for copyright parsing.
var (
	// ErrYearRange indicates malformed year range text.
	ErrYearRange = errors.New("malformed year range")
	// ErrNoPrefix indicates text matching no known copyright prefix.
	ErrNoPrefix = errors.New("no known copyright prefix")
)
