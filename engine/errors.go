package engine

import "errors"

// ErrConfigurationInvalid is the sentinel wrapped by every configuration
// validation failure, so callers can test with errors.Is regardless of the
// specific detail message.
var ErrConfigurationInvalid = errors.New("engine: configuration invalid")
