// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides drawing targets for canvasmem proxies.
//
// ImageSurface is a CPU canvas backed by an *image.RGBA. It behaves like
// an HTML canvas context: it implements every capability a proxy can
// bind, keeps its transformation matrix private, and reports style
// properties in canvas form ("#rrggbb", "butt", "miter").
//
//	s := surface.NewImageSurface(200, 200)
//	p, err := canvasmem.Wrap(s)
//	if err != nil {
//		return err
//	}
//	p.Translate(50, 50)
//	p.Rect(0, 0, 20, 20)
//	p.Fill()
//	_ = s.SavePNG("out.png")
//
// # Registry
//
// Targets are created by name through a registry. The "image" target is
// always registered; other packages (such as recording) add their own
// from init. OpenFor picks the highest ranked target that supports a
// given set of operations:
//
//	s, err := surface.Open("image", surface.Options{Width: 800, Height: 600})
//	name, s, err := surface.OpenFor(canvasmem.DefaultOperations(), opts)
//
// # Colours
//
// ParseColor understands CSS named colours (via
// golang.org/x/image/colornames), hex forms and rgb()/rgba().
package surface
