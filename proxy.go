package canvasmem

import (
	"errors"
	"fmt"
	"slices"
)

// Proxy wraps a drawing Surface, forwarding every bound operation while
// tracking the cumulative transform, the paint style and the current
// path position that the surface keeps to itself.
//
// Each bound call runs the operation's pre hook, delegates to the
// target with unchanged arguments, runs the post hook and returns the
// target's result. Target errors are returned verbatim; when the target
// fails the post hook is skipped.
//
// Proxy implements the same capability interfaces as the surfaces it
// wraps, so it can stand in for them.
//
// A Proxy is not safe for concurrent use.
type Proxy struct {
	opts   options
	hooks  HookTable
	acc    *Accumulator
	style  Style
	pos    Point
	bound  [numOps]bool
	target Surface

	paths    PathBuilder
	painter  Painter
	trans    Transformer
	resetter ResetTransformer
	saver    StateSaver
	grads    GradientFactory
}

// Compile-time interface checks.
var (
	_ Surface          = (*Proxy)(nil)
	_ PathBuilder      = (*Proxy)(nil)
	_ Painter          = (*Proxy)(nil)
	_ Transformer      = (*Proxy)(nil)
	_ ResetTransformer = (*Proxy)(nil)
	_ StateSaver       = (*Proxy)(nil)
	_ GradientFactory  = (*Proxy)(nil)
)

// New creates an unbound proxy with the default hooks installed.
func New(opts ...Option) *Proxy {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Proxy{
		opts:  o,
		acc:   NewAccumulator(),
		style: Style{},
	}
	installDefaultHooks(&p.hooks)
	return p
}

// Wrap creates a proxy and binds it to target.
func Wrap(target Surface, opts ...Option) (*Proxy, error) {
	p := New(opts...)
	if _, err := p.Bind(target); err != nil {
		return nil, err
	}
	return p, nil
}

// Bind attaches the proxy to target and returns target for chaining.
//
// The configured style properties are copied from the target into the
// proxy. Every configured operation must be supported by the target;
// otherwise Bind returns an error wrapping ErrUnsupportedCapability for
// each missing operation and the proxy stays unbound. With the default
// operation list, resetTransform is bound as well when the target
// supports it.
func (p *Proxy) Bind(target Surface) (Surface, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if p.target != nil {
		return nil, ErrAlreadyBound
	}

	ops := p.opts.ops
	if !p.opts.explicitOps && Supports(target, OpResetTransform) {
		ops = append(ops[:len(ops):len(ops)], OpResetTransform)
	}

	var errs []error
	for _, op := range ops {
		if !op.Valid() {
			errs = append(errs, fmt.Errorf("canvasmem: %w: %s", ErrUnknownOperation, op))
			continue
		}
		if !Supports(target, op) {
			errs = append(errs, fmt.Errorf("canvasmem: %w: %s on %T", ErrUnsupportedCapability, op, target))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	p.target = target
	p.paths, _ = target.(PathBuilder)
	p.painter, _ = target.(Painter)
	p.trans, _ = target.(Transformer)
	p.resetter, _ = target.(ResetTransformer)
	p.saver, _ = target.(StateSaver)
	p.grads, _ = target.(GradientFactory)
	for _, op := range ops {
		p.bound[op] = true
	}
	p.style = copyStyle(target, p.opts.styleProps)

	Logger().Debug("canvasmem: proxy bound",
		"target", fmt.Sprintf("%T", target),
		"operations", len(ops),
		"styleProperties", len(p.style))
	return target, nil
}

// Target returns the bound surface, or nil.
func (p *Proxy) Target() Surface {
	return p.target
}

// Bound reports whether op is bound and intercepted.
func (p *Proxy) Bound(op Op) bool {
	return op.Valid() && p.bound[op]
}

// RegisterPreHook sets the hook run before op is delegated, replacing
// any previous one. A nil fn removes it.
func (p *Proxy) RegisterPreHook(op Op, fn Hook) {
	p.hooks.SetPre(op, fn)
}

// RegisterPostHook sets the hook run after op is delegated, replacing
// any previous one. A nil fn removes it.
func (p *Proxy) RegisterPostHook(op Op, fn Hook) {
	p.hooks.SetPost(op, fn)
}

// CurrentPosition returns the pen position recorded by the last
// path-extending operation, mapped through the transform in effect
// when that operation ran.
func (p *Proxy) CurrentPosition() Point {
	return p.pos
}

// PointInCurrentTransform maps (x, y) through the current accumulated
// transform. It does not change any state.
func (p *Proxy) PointInCurrentTransform(x, y float64) Point {
	return p.acc.Matrix().TransformPoint(Pt(x, y))
}

// CurrentOrigin returns where (0, 0) maps under the current transform.
func (p *Proxy) CurrentOrigin() Point {
	return p.PointInCurrentTransform(0, 0)
}

// UserPosition maps the current position back through the inverse of
// the current transform. It reports false if the transform is singular.
func (p *Proxy) UserPosition() (Point, bool) {
	inv, ok := p.acc.Matrix().Invert()
	if !ok {
		return Point{}, false
	}
	return inv.TransformPoint(p.pos), true
}

// Matrix returns the current accumulated transform.
func (p *Proxy) Matrix() Matrix {
	return p.acc.Matrix()
}

// Depth returns the number of saves not yet restored.
func (p *Proxy) Depth() int {
	return p.acc.Depth()
}

// SetStyle sets a style property on the proxy. It takes effect on the
// target right before the next painting operation. Properties outside
// the configured list are ignored.
func (p *Proxy) SetStyle(name string, value any) {
	if !slices.Contains(p.opts.styleProps, name) {
		Logger().Debug("canvasmem: ignoring unconfigured style property", "property", name)
		return
	}
	p.style[name] = value
}

// Style returns the proxy's value of a style property.
func (p *Proxy) Style(name string) (any, bool) {
	return p.style.Get(name)
}

// StyleSnapshot returns a copy of the proxy's style.
func (p *Proxy) StyleSnapshot() Style {
	return p.style.Clone()
}

// SetFillStyle sets the fillStyle property.
func (p *Proxy) SetFillStyle(v any) { p.SetStyle(PropFillStyle, v) }

// SetStrokeStyle sets the strokeStyle property.
func (p *Proxy) SetStrokeStyle(v any) { p.SetStyle(PropStrokeStyle, v) }

// SetLineWidth sets the lineWidth property.
func (p *Proxy) SetLineWidth(w float64) { p.SetStyle(PropLineWidth, w) }

// SetGlobalAlpha sets the globalAlpha property.
func (p *Proxy) SetGlobalAlpha(a float64) { p.SetStyle(PropGlobalAlpha, a) }

// StyleValue implements StyleTarget.
func (p *Proxy) StyleValue(name string) (any, bool) {
	return p.Style(name)
}

// SetStyleValue implements StyleTarget.
func (p *Proxy) SetStyleValue(name string, value any) {
	p.SetStyle(name, value)
}

// Capabilities implements CapabilityReporter: a proxy supports exactly
// the operations it has bound.
func (p *Proxy) Capabilities() []Op {
	ops := make([]Op, 0, numOps)
	for op := Op(0); op < numOps; op++ {
		if p.bound[op] {
			ops = append(ops, op)
		}
	}
	return ops
}

func (p *Proxy) setPosition(x, y float64) {
	p.pos = p.acc.Matrix().TransformPoint(Pt(x, y))
}

// intercept runs one bound operation: pre hook, call, post hook.
func (p *Proxy) intercept(op Op, args []float64, call func() error) error {
	if !p.Bound(op) {
		Logger().Warn("canvasmem: dropping call to unbound operation", "op", op.String())
		return fmt.Errorf("canvasmem: %s: %w", op, ErrNotBound)
	}
	if pre := p.hooks.Pre(op); pre != nil {
		pre(p, args)
	}
	if err := call(); err != nil {
		return err
	}
	if post := p.hooks.Post(op); post != nil {
		post(p, args)
	}
	if p.opts.observer != nil {
		p.opts.observer(Event{
			Op:       op,
			Args:     args,
			Position: p.pos,
			Origin:   p.CurrentOrigin(),
		})
	}
	return nil
}
