// Package canvasmem remembers what a 2D drawing surface forgets to tell.
//
// # Overview
//
// Canvas-like surfaces accept translate, scale, rotate, transform and
// save/restore calls but do not expose the resulting transform, and they
// track a pen position for path building that cannot be read back.
// canvasmem wraps such a surface in a Proxy that forwards every call
// unchanged while keeping its own copy of that hidden state:
//
//   - the cumulative affine transform ([Proxy.Matrix], [Proxy.CurrentOrigin],
//     [Proxy.PointInCurrentTransform])
//   - the current path position ([Proxy.CurrentPosition])
//   - a save/restore stack of transform and paint style
//
// # Quick Start
//
//	img := surface.NewImageSurface(400, 300)
//	p, err := canvasmem.Wrap(img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.Translate(50, 50)
//	p.Scale(2, 2)
//	p.MoveTo(10, 10)
//	p.LineTo(20, 10)
//	fmt.Println(p.CurrentPosition()) // {90 70}
//	fmt.Println(p.CurrentOrigin())   // {50 50}
//
// # Hooks
//
// Every operation has one optional pre hook and one optional post hook,
// stored in an explicit table indexed by [Op]. The defaults copy the
// proxy's style onto the target before painting, record the position
// after path operations and drive the [Accumulator] after transform and
// state operations. [Proxy.RegisterPreHook] and [Proxy.RegisterPostHook]
// replace them.
//
// # Capabilities
//
// The operations a proxy binds and the style properties it tracks are
// configuration ([WithOperations], [WithStyleProperties]). A target that
// lacks a configured operation is rejected at bind time with
// [ErrUnsupportedCapability].
//
// # Invalid transforms
//
// A transform call whose result contains NaN or an infinity (scale by
// NaN, a degenerate setTransform) is ignored: the previous matrix stays
// in effect and no error is reported, matching how drawing surfaces keep
// rendering after a bad call.
//
// # Thread Safety
//
// A Proxy, like the surface it wraps, must be used from one goroutine.
package canvasmem
