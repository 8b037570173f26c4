package annotations

import "errors"

// Sentinel errors for configuration loading. Every error produced while
// loading a configuration file is wrapped with that file's path.
var (
	// ErrConfigType indicates a field holding a value of the wrong type.
	ErrConfigType = errors.New("wrong value type")
	// ErrConfigValue indicates a well-typed but invalid field value.
	ErrConfigValue = errors.New("invalid value")
)
