package canvasmem

// Hook observes an intercepted operation. It receives the proxy and the
// operation's numeric arguments in signature order. Hooks must not
// modify args.
type Hook func(p *Proxy, args []float64)

// Event describes a completed, bound operation.
type Event struct {
	Op       Op
	Args     []float64
	Position Point
	Origin   Point
}

// Observer receives an Event after each bound operation.
type Observer func(Event)

// hookPair holds the hooks of one operation.
type hookPair struct {
	pre  Hook
	post Hook
}

// HookTable maps each operation to at most one pre hook and one post
// hook. Setting a hook replaces the previous one.
type HookTable struct {
	entries [numOps]hookPair
}

// SetPre sets the pre hook of op. A nil fn clears it.
func (t *HookTable) SetPre(op Op, fn Hook) {
	if op.Valid() {
		t.entries[op].pre = fn
	}
}

// SetPost sets the post hook of op. A nil fn clears it.
func (t *HookTable) SetPost(op Op, fn Hook) {
	if op.Valid() {
		t.entries[op].post = fn
	}
}

// Pre returns the pre hook of op, or nil.
func (t *HookTable) Pre(op Op) Hook {
	if !op.Valid() {
		return nil
	}
	return t.entries[op].pre
}

// Post returns the post hook of op, or nil.
func (t *HookTable) Post(op Op) Hook {
	if !op.Valid() {
		return nil
	}
	return t.entries[op].post
}

// installDefaultHooks wires style copying, position tracking and
// transform tracking.
func installDefaultHooks(t *HookTable) {
	// Painting must use the style last set on the proxy.
	for _, op := range []Op{OpRect, OpArc, OpStroke, OpFill, OpStrokeRect, OpFillRect} {
		t.SetPre(op, hookCopyStyle)
	}

	for _, op := range []Op{OpLineTo, OpMoveTo, OpRect, OpStrokeRect, OpFillRect} {
		t.SetPost(op, hookSetPosition)
	}
	// Curves take their end point last.
	t.SetPost(OpBezierCurveTo, hookSetPositionLast)
	t.SetPost(OpQuadraticCurveTo, hookSetPositionLast)

	t.SetPost(OpSave, hookSave)
	t.SetPost(OpRestore, hookRestore)
	t.SetPost(OpTranslate, hookTranslate)
	t.SetPost(OpScale, hookScale)
	t.SetPost(OpRotate, hookRotate)
	t.SetPost(OpTransform, hookTransform)
	t.SetPost(OpSetTransform, hookSetTransform)
	t.SetPost(OpResetTransform, hookResetTransform)
}

func hookCopyStyle(p *Proxy, _ []float64) {
	applyStyle(p.style, p.target, p.opts.styleProps)
}

func hookSetPosition(p *Proxy, args []float64) {
	if len(args) < 2 {
		return
	}
	p.setPosition(args[0], args[1])
}

func hookSetPositionLast(p *Proxy, args []float64) {
	if len(args) < 2 {
		return
	}
	p.setPosition(args[len(args)-2], args[len(args)-1])
}

func hookSave(p *Proxy, _ []float64) {
	p.acc.Save(p.style)
}

func hookRestore(p *Proxy, _ []float64) {
	if s, ok := p.acc.Restore(); ok {
		p.style = s
	}
}

func hookTranslate(p *Proxy, args []float64) {
	p.acc.Translate(args[0], args[1])
}

func hookScale(p *Proxy, args []float64) {
	p.acc.Scale(args[0], args[1])
}

func hookRotate(p *Proxy, args []float64) {
	p.acc.Rotate(args[0])
}

func hookTransform(p *Proxy, args []float64) {
	p.acc.Transform(args[0], args[1], args[2], args[3], args[4], args[5])
}

func hookSetTransform(p *Proxy, args []float64) {
	p.acc.SetTransform(args[0], args[1], args[2], args[3], args[4], args[5])
}

func hookResetTransform(p *Proxy, _ []float64) {
	p.acc.TrySet(Identity())
}
