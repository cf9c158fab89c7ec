package lua

import (
	"errors"
	"fmt"
	"strings"

	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/canvasmem"
)

// Bindings exposes a proxy to Lua scripts.
//
// Every operation bound on the proxy becomes a global function named
// after it, taking the operation's arguments:
//
//	beginPath()
//	moveTo(10, 10)
//	arc(50, 50, 20, 0, math.pi, true)
//	local g = createLinearGradient(0, 0, 100, 0)
//	addColorStop(g, 0, "red")
//	setStyle("fillStyle", g)
//	fill()
//	local x, y = currentPosition()
//
// Helper globals: setStyle(name, value), getStyle(name),
// currentPosition(), currentOrigin(), pointInCurrentTransform(x, y),
// depth() and addColorStop(gradient, offset, colour).
type Bindings struct {
	runtime *Runtime
	proxy   *canvasmem.Proxy

	// failed is the error returned by the most recent failing call.
	// A script error carrying its message wraps it.
	failed error
}

// Bind registers the proxy's bound operations and the helper
// functions as globals of r.
func Bind(r *Runtime, p *canvasmem.Proxy) (*Bindings, error) {
	if p == nil {
		return nil, ErrNilProxy
	}
	b := &Bindings{runtime: r, proxy: p}

	for _, op := range p.Capabilities() {
		r.SetGoFunction(op.String(), b.opFunc(op), op.Arity(), true)
	}

	r.SetGoFunction("setStyle", b.setStyle, 2, false)
	r.SetGoFunction("getStyle", b.getStyle, 1, false)
	r.SetGoFunction("currentPosition", b.currentPosition, 0, false)
	r.SetGoFunction("currentOrigin", b.currentOrigin, 0, false)
	r.SetGoFunction("pointInCurrentTransform", b.pointInCurrentTransform, 2, false)
	r.SetGoFunction("depth", b.depth, 0, false)
	r.SetGoFunction("addColorStop", b.addColorStop, 3, false)

	canvasmem.Logger().Debug("lua: proxy bound", "operations", len(p.Capabilities()))
	return b, nil
}

// Proxy returns the bound proxy.
func (b *Bindings) Proxy() *canvasmem.Proxy {
	return b.proxy
}

// ExecuteString runs a script. If the script failed inside a drawing
// call, the returned error also wraps the proxy or target error.
func (b *Bindings) ExecuteString(name, code string) error {
	b.failed = nil
	_, err := b.runtime.ExecuteString(name, code)
	return b.wrap(err)
}

// ExecuteFile runs a script file, wrapping errors as ExecuteString does.
func (b *Bindings) ExecuteFile(path string) error {
	b.failed = nil
	_, err := b.runtime.ExecuteFile(path)
	return b.wrap(err)
}

// wrap attaches the last failing call's error to err when err is that
// failure surfacing from the script. A failure caught by pcall leaves
// later, unrelated script errors alone.
func (b *Bindings) wrap(err error) error {
	failed := b.failed
	b.failed = nil
	if err == nil || failed == nil || errors.Is(err, failed) {
		return err
	}
	if !strings.Contains(err.Error(), failed.Error()) {
		return err
	}
	return fmt.Errorf("%w: %w", err, failed)
}

func (b *Bindings) fail(name string, err error) error {
	b.failed = fmt.Errorf("%s: %w", name, err)
	return b.failed
}

// opFunc returns the Lua function forwarding op to the proxy.
// arc accepts its counterclockwise flag as a boolean or a number and
// defaults it to false.
func (b *Bindings) opFunc(op canvasmem.Op) rt.GoFunctionFunc {
	name := op.String()
	arity := op.Arity()
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		args := getAllArgs(c)
		nums := make([]float64, arity)
		for i := range nums {
			if op == canvasmem.OpArc && i == arity-1 {
				nums[i] = boolArg(args, i)
				continue
			}
			v, err := getFloatArg(args, i)
			if err != nil {
				return nil, b.fail(name, err)
			}
			nums[i] = v
		}

		g, err := b.proxy.Call(op, nums...)
		if err != nil {
			return nil, b.fail(name, err)
		}
		if g != nil {
			return c.PushingNext1(t.Runtime, rt.UserDataValue(rt.NewUserData(g, nil))), nil
		}
		return c.Next(), nil
	}
}

func (b *Bindings) setStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	name, err := getStringArg(args, 0)
	if err != nil {
		return nil, b.fail("setStyle", err)
	}
	if len(args) < 2 {
		return nil, b.fail("setStyle", fmt.Errorf("argument 1 out of range (have %d)", len(args)))
	}
	v, err := fromLua(args[1])
	if err != nil {
		return nil, b.fail("setStyle", err)
	}
	b.proxy.SetStyle(name, v)
	return c.Next(), nil
}

func (b *Bindings) getStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	name, err := getStringArg(getAllArgs(c), 0)
	if err != nil {
		return nil, b.fail("getStyle", err)
	}
	v, _ := b.proxy.Style(name)
	return c.PushingNext1(t.Runtime, toLua(v)), nil
}

func (b *Bindings) currentPosition(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	pt := b.proxy.CurrentPosition()
	return c.PushingNext(t.Runtime, rt.FloatValue(pt.X), rt.FloatValue(pt.Y)), nil
}

func (b *Bindings) currentOrigin(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	pt := b.proxy.CurrentOrigin()
	return c.PushingNext(t.Runtime, rt.FloatValue(pt.X), rt.FloatValue(pt.Y)), nil
}

func (b *Bindings) pointInCurrentTransform(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	x, err := getFloatArg(args, 0)
	if err != nil {
		return nil, b.fail("pointInCurrentTransform", err)
	}
	y, err := getFloatArg(args, 1)
	if err != nil {
		return nil, b.fail("pointInCurrentTransform", err)
	}
	pt := b.proxy.PointInCurrentTransform(x, y)
	return c.PushingNext(t.Runtime, rt.FloatValue(pt.X), rt.FloatValue(pt.Y)), nil
}

func (b *Bindings) depth(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(b.proxy.Depth()))), nil
}

func (b *Bindings) addColorStop(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	g, err := getGradientArg(args, 0)
	if err != nil {
		return nil, b.fail("addColorStop", err)
	}
	offset, err := getFloatArg(args, 1)
	if err != nil {
		return nil, b.fail("addColorStop", err)
	}
	color, err := getStringArg(args, 2)
	if err != nil {
		return nil, b.fail("addColorStop", err)
	}
	if err := g.AddColorStop(offset, color); err != nil {
		return nil, b.fail("addColorStop", err)
	}
	return c.Next(), nil
}

// --------------------------------------------------------------------------
// Argument conversion
// --------------------------------------------------------------------------

// getAllArgs combines Args() and Etc() to get all arguments including varargs.
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx)
}

func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx)
}

func getGradientArg(args []rt.Value, idx int) (canvasmem.Gradient, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if ud, ok := args[idx].TryUserData(); ok {
		if g, ok := ud.Value().(canvasmem.Gradient); ok {
			return g, nil
		}
	}
	return nil, fmt.Errorf("argument %d: %w", idx, ErrNotGradient)
}

// boolArg reads an optional flag: true, or a non-zero number, is 1.
func boolArg(args []rt.Value, idx int) float64 {
	if idx >= len(args) {
		return 0
	}
	if args[idx] == rt.BoolValue(true) {
		return 1
	}
	if f, err := getFloatArg(args, idx); err == nil && f != 0 {
		return 1
	}
	return 0
}

// fromLua converts a style value.
func fromLua(v rt.Value) (any, error) {
	if s, ok := v.TryString(); ok {
		return s, nil
	}
	if f, ok := v.TryFloat(); ok {
		return f, nil
	}
	if i, ok := v.TryInt(); ok {
		return float64(i), nil
	}
	if ud, ok := v.TryUserData(); ok {
		if g, ok := ud.Value().(canvasmem.Gradient); ok {
			return g, nil
		}
	}
	return nil, ErrStyleValue
}

// toLua converts a style value for scripts. Unknown kinds become nil.
func toLua(v any) rt.Value {
	switch x := v.(type) {
	case float64:
		return rt.FloatValue(x)
	case float32:
		return rt.FloatValue(float64(x))
	case int:
		return rt.IntValue(int64(x))
	case int64:
		return rt.IntValue(x)
	case string:
		return rt.StringValue(x)
	case canvasmem.Gradient:
		return rt.UserDataValue(rt.NewUserData(x, nil))
	}
	return rt.NilValue
}
