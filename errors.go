package canvasmem

import "errors"

var (
	// ErrNilTarget is returned when Bind is called with a nil surface.
	ErrNilTarget = errors.New("canvasmem: nil target")

	// ErrAlreadyBound is returned when Bind is called on a proxy that is
	// already bound. A proxy binds to exactly one target for its lifetime.
	ErrAlreadyBound = errors.New("canvasmem: proxy already bound")

	// ErrUnsupportedCapability is returned by Bind when the configured
	// capability list names an operation the target does not implement.
	ErrUnsupportedCapability = errors.New("unsupported capability")

	// ErrNotBound is returned when an operation outside the bound
	// capability list is invoked on a proxy.
	ErrNotBound = errors.New("operation not bound")

	// ErrUnknownOperation is returned for operation names or values that
	// do not denote an Op.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrArity is returned by Proxy.Call when the number of arguments
	// does not match the operation.
	ErrArity = errors.New("wrong number of arguments")
)
