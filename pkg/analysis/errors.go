package analysis

import (
	"errors"
	"fmt"
)

// ErrConfig is the root of every configuration error.
var ErrConfig = errors.New("analysis: configuration error")

var (
	ErrUnknownProfile  = fmt.Errorf("%w: unknown profile", ErrConfig)
	ErrInvalidVariants = fmt.Errorf("%w: variant level must be 0 to 3", ErrConfig)
	ErrMissingResource = fmt.Errorf("%w: missing resource", ErrConfig)
	ErrProfileDisabled = fmt.Errorf("%w: profile not enabled", ErrConfig)
)
