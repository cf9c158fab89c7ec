// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap (no extension).
	LineCapButt LineCap = iota

	// LineCapRound specifies a semicircular line cap.
	LineCapRound

	// LineCapSquare specifies a square line cap (extends by half width).
	LineCapSquare
)

var lineCapNames = [...]string{
	LineCapButt:   "butt",
	LineCapRound:  "round",
	LineCapSquare: "square",
}

// String returns the canvas keyword of the cap.
func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "butt"
}

// parseLineCap maps a canvas keyword to a LineCap.
func parseLineCap(s string) (LineCap, bool) {
	for i, name := range lineCapNames {
		if name == s {
			return LineCap(i), true
		}
	}
	return 0, false
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota

	// LineJoinRound specifies a rounded join.
	LineJoinRound

	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{
	LineJoinMiter: "miter",
	LineJoinRound: "round",
	LineJoinBevel: "bevel",
}

// String returns the canvas keyword of the join.
func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "miter"
}

// parseLineJoin maps a canvas keyword to a LineJoin.
func parseLineJoin(s string) (LineJoin, bool) {
	for i, name := range lineJoinNames {
		if name == s {
			return LineJoin(i), true
		}
	}
	return 0, false
}

// Options configures surface creation through the registry.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int
}
