package recording

import (
	"github.com/gogpu/canvasmem"
	"github.com/gogpu/canvasmem/surface"
)

// TargetName is the name under which the Recorder is registered with
// the surface registry.
const TargetName = "record"

// init registers the Recorder following the database/sql driver
// pattern, so that importing this package makes the target available:
//
//	import _ "github.com/gogpu/canvasmem/recording"
//
//	s, err := surface.Open("record", surface.Options{Width: 800, Height: 600})
func init() {
	surface.Register(TargetName, 5, func(opts surface.Options) (canvasmem.Surface, error) {
		return NewRecorder(opts.Width, opts.Height), nil
	})
}
