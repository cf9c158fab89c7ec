// Package recording provides a drawing target that records operations.
//
// A Recorder implements every canvasmem capability but draws nothing:
// each call becomes a Command holding the operation and its numeric
// arguments. Painting commands also carry a snapshot of the paint style
// in effect, so a Recording can be replayed onto any other surface
// without replaying style assignments.
//
// Design follows Cairo's recording surface: typed commands kept for
// inspection and replay, rather than a serialized byte stream.
//
// # Example
//
//	rec := recording.NewRecorder(800, 600)
//	p, _ := canvasmem.Wrap(rec)
//	p.SetFillStyle("red")
//	p.Translate(100, 100)
//	p.FillRect(0, 0, 50, 50)
//
//	r := rec.FinishRecording()
//	img := surface.NewImageSurface(r.Width(), r.Height())
//	if err := r.Playback(img); err != nil {
//		return err
//	}
//
// The package registers the "record" target kind with the surface
// registry.
package recording
