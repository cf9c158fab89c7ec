// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/canvasmem/internal/cache"
)

type parsedColor struct {
	c  color.NRGBA
	ok bool
}

// colorCache holds recently parsed style strings.
var colorCache = cache.New[string, parsedColor](256)

// ParseColor parses a CSS colour: a named colour, "transparent",
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a).
// The result is not premultiplied.
func ParseColor(s string) (color.NRGBA, bool) {
	p := colorCache.GetOrCreate(s, func() parsedColor {
		c, ok := parseColor(s)
		return parsedColor{c: c, ok: ok}
	})
	return p.c, p.ok
}

func parseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.NRGBA{}, false
	}
	if s == "transparent" {
		return color.NRGBA{}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseFuncColor(s)
	}
	return color.NRGBA{}, false
}

func parseHexColor(hex string) (color.NRGBA, bool) {
	var digits [8]uint8
	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			v, ok := hexDigit(hex[i])
			if !ok {
				return color.NRGBA{}, false
			}
			digits[i] = v<<4 | v
		}
		c := color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: 255}
		if len(hex) == 4 {
			c.A = digits[3]
		}
		return c, true
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return color.NRGBA{}, false
			}
			digits[i/2] = hi<<4 | lo
		}
		c := color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: 255}
		if len(hex) == 8 {
			c.A = digits[3]
		}
		return c, true
	}
	return color.NRGBA{}, false
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

func parseFuncColor(s string) (color.NRGBA, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		rgb[i] = clampByte(v)
	}
	c := color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		c.A = clampByte(a * 255)
	}
	return c, true
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// FormatColor serialises a colour the way a canvas reports fillStyle:
// #rrggbb when opaque, rgba(...) otherwise.
func FormatColor(c color.NRGBA) string {
	if c.A == 255 {
		const hex = "0123456789abcdef"
		b := []byte{'#', 0, 0, 0, 0, 0, 0}
		for i, v := range []uint8{c.R, c.G, c.B} {
			b[1+2*i] = hex[v>>4]
			b[2+2*i] = hex[v&0xf]
		}
		return string(b)
	}
	return "rgba(" + strconv.Itoa(int(c.R)) + ", " + strconv.Itoa(int(c.G)) + ", " +
		strconv.Itoa(int(c.B)) + ", " + strconv.FormatFloat(float64(c.A)/255, 'g', 3, 64) + ")"
}

// withAlpha scales the colour's alpha by a in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a >= 1 {
		return c
	}
	c.A = clampByte(float64(c.A) * a)
	return c
}
