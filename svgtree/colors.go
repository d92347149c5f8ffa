package svgtree

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// SVG color parsing. Keyword colors are resolved
// through x/image/colornames.

var errColorFormat = errors.New("invalid color format")

// optionnalColor distinguishes a color from the
// explicit 'none' paint
type optionnalColor struct {
	color color.NRGBA
	valid bool
}

// asPattern returns nil for the 'none' paint
func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return PlainColor{NRGBA: o.color}
}

func (o optionnalColor) asColor() color.NRGBA {
	if !o.valid {
		return color.NRGBA{}
	}
	return o.color
}

// parseColorComponent parses either a decimal value
// or a percentage, clamping to [0, 255]
func parseColorComponent(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	isPercent := strings.HasSuffix(v, "%")
	if isPercent {
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if isPercent {
		// multiply before dividing: 255./100. is not exact in binary
		f = f * 255 / 100
	}
	if f < 0 {
		f = 0
	} else if f > 255 {
		f = 255
	}
	return uint8(f + 0.5), nil
}

// parseSVGColor parses an SVG color value: either a keyword color,
// a #rgb or #rrggbb hexadecimal form, or a rgb(...) functional form.
// The values 'none' and 'transparent' yield an invalid (no paint) color.
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "transparent":
		// nil signals that the function (fill or stroke) is off
		return optionnalColor{}, nil
	case "currentcolor", "inherit":
		// not resolved at this level; defaults to black
		return optionnalColor{color: color.NRGBA{A: 0xFF}, valid: true}, nil
	}
	switch {
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			// expand #abc into #aabbcc
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return optionnalColor{}, errColorFormat
		}
		var r, g, b uint8
		n, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		if n != 3 || err != nil {
			return optionnalColor{}, errColorFormat
		}
		return optionnalColor{color: color.NRGBA{R: r, G: g, B: b, A: 0xFF}, valid: true}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		values := splitOnCommaOrSpace(v[4 : len(v)-1])
		if len(values) != 3 {
			return optionnalColor{}, errColorFormat
		}
		var comps [3]uint8
		for i, c := range values {
			var err error
			comps[i], err = parseColorComponent(c)
			if err != nil {
				return optionnalColor{}, err
			}
		}
		return optionnalColor{color: color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: 0xFF}, valid: true}, nil
	default:
		if rgba, ok := colornames.Map[v]; ok {
			return optionnalColor{
				color: color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A},
				valid: true,
			}, nil
		}
		return optionnalColor{}, fmt.Errorf("unknown color name %s", colorStr)
	}
}
