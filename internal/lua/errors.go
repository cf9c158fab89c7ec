package lua

import "errors"

var (
	// ErrNilProxy is returned when binding a nil proxy.
	ErrNilProxy = errors.New("lua: proxy cannot be nil")

	// ErrNotGradient is returned when a gradient argument is not a
	// gradient userdata.
	ErrNotGradient = errors.New("expected gradient userdata")

	// ErrLimitExceeded is returned when a script exceeds its CPU or
	// memory limit.
	ErrLimitExceeded = errors.New("resource limit exceeded")

	// ErrStyleValue is returned by setStyle for values that are not
	// numbers, strings or gradients.
	ErrStyleValue = errors.New("style value must be a number, string or gradient")
)
