package core

import (
	"errors"
)

var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrPlatformNotReady  = errors.New("platform not started")
	ErrEventNotReady     = errors.New("event system not initialized")
	ErrUnknownSource     = errors.New("unknown content source")
	ErrUnsupportedFormat = errors.New("unsupported content format")
	ErrUnknown           = errors.New("unknown")
)
