package canvasmem

import "maps"

// Paint-style property names understood by canvas-like targets.
const (
	PropLineWidth     = "lineWidth"
	PropLineJoin      = "lineJoin"
	PropLineCap       = "lineCap"
	PropFillStyle     = "fillStyle"
	PropStrokeStyle   = "strokeStyle"
	PropGlobalAlpha   = "globalAlpha"
	PropMiterLimit    = "miterLimit"
	PropShadowBlur    = "shadowBlur"
	PropShadowColor   = "shadowColor"
	PropShadowOffsetX = "shadowOffsetX"
	PropShadowOffsetY = "shadowOffsetY"
)

// DefaultStyleProperties returns the style properties snapshotted by
// default. A fresh slice is returned on every call.
func DefaultStyleProperties() []string {
	return []string{
		PropLineWidth, PropLineJoin, PropLineCap,
		PropFillStyle, PropStrokeStyle, PropGlobalAlpha,
		PropMiterLimit, PropShadowBlur, PropShadowColor,
		PropShadowOffsetX, PropShadowOffsetY,
	}
}

// Style maps paint-style property names to their values.
//
// Values are whatever the target accepts: numbers, CSS colour strings,
// gradients. They are copied by value; a gradient value is shared, as it
// is on a canvas.
type Style map[string]any

// Clone returns a copy of the style. A nil style clones to an empty one.
func (s Style) Clone() Style {
	if s == nil {
		return Style{}
	}
	return maps.Clone(s)
}

// Get returns the value of a property and whether it is set.
func (s Style) Get(name string) (any, bool) {
	v, ok := s[name]
	return v, ok
}

// Float returns a numeric property, or def if it is unset or not a number.
func (s Style) Float(name string, def float64) float64 {
	switch v := s[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// StyleTarget is implemented by surfaces that expose paint-style
// properties by name. Every Surface must implement it.
type StyleTarget interface {
	// StyleValue returns the current value of a property.
	// The second result is false if the target does not know the property.
	StyleValue(name string) (any, bool)

	// SetStyleValue assigns a property. Targets ignore values they
	// cannot use, as a canvas does for malformed colours.
	SetStyleValue(name string, value any)
}

// copyStyle copies the named properties from src into a new Style.
// Properties the target does not know are left out.
func copyStyle(src StyleTarget, names []string) Style {
	s := make(Style, len(names))
	for _, name := range names {
		if v, ok := src.StyleValue(name); ok {
			s[name] = v
		}
	}
	return s
}

// applyStyle assigns every named property present in s onto dst.
func applyStyle(s Style, dst StyleTarget, names []string) {
	for _, name := range names {
		if v, ok := s[name]; ok {
			dst.SetStyleValue(name, v)
		}
	}
}
