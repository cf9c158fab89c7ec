package canvasmem

// Option configures a Proxy during creation.
// Use functional options to inject the capability lists:
//
//	// Intercept only path and transform operations
//	p := canvasmem.New(canvasmem.WithOperations(
//	    canvasmem.OpMoveTo, canvasmem.OpLineTo,
//	    canvasmem.OpTranslate, canvasmem.OpScale,
//	))
type Option func(*options)

// options holds optional configuration for Proxy creation.
type options struct {
	ops        []Op
	styleProps []string
	observer   Observer

	// explicitOps is set by WithOperations; otherwise Bind also binds
	// resetTransform when the target supports it.
	explicitOps bool
}

// defaultOptions returns the default proxy options.
func defaultOptions() options {
	return options{
		ops:        DefaultOperations(),
		styleProps: DefaultStyleProperties(),
	}
}

// WithOperations sets the operations the proxy binds and intercepts.
// Bind fails if the target lacks any of them. Without this option the
// proxy binds DefaultOperations plus resetTransform where available.
func WithOperations(ops ...Op) Option {
	return func(o *options) {
		o.ops = append([]Op(nil), ops...)
		o.explicitOps = true
	}
}

// WithStyleProperties sets the style properties copied from the target
// at bind time, snapshotted on save and applied before painting.
func WithStyleProperties(names ...string) Option {
	return func(o *options) {
		o.styleProps = append([]string(nil), names...)
	}
}

// WithObserver registers fn to be called after every bound operation
// completes, including its post hook. Observers do not occupy hook
// slots, so they survive RegisterPostHook.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}
