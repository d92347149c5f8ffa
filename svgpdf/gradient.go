package svgpdf

import (
	"image/color"

	"github.com/benoitkugler/svgcanvas/svgtree"
)

// Gradients are approximated by a plain color: the color the gradient
// takes at the center of the current path extent.
// TODO: emit a PDF shading pattern instead of the fallback color

// gradientFallback picks the fallback color for the gradient,
// evaluating linear gradients at the center of the path
// bounding box accumulated by the pather.
func (p *pather) gradientFallback(grad svgtree.Gradient) color.NRGBA {
	t := 0.5
	if dir, ok := grad.Direction.(svgtree.Linear); ok {
		// the center of the path extent, in gradient coordinates
		cx, cy := 0.5, 0.5
		if grad.Units == svgtree.UserSpaceOnUse {
			minX, minY := fixedTof(p.boundingBox.Min)
			maxX, maxY := fixedTof(p.boundingBox.Max)
			cx, cy = (minX+maxX)/2, (minY+maxY)/2
		}
		dx, dy := dir[2]-dir[0], dir[3]-dir[1]
		if l := dx*dx + dy*dy; l != 0 {
			t = ((cx-dir[0])*dx + (cy-dir[1])*dy) / l
		}
	}
	return gradientColorAt(grad.Stops, t)
}

// gradientColorAt interpolates the gradient stops at offset t,
// clamping outside the covered range.
func gradientColorAt(stops []svgtree.GradStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{A: 0xFF}
	}
	if t <= stops[0].Offset {
		return stopColor(stops[0])
	}
	for i := 0; i+1 < len(stops); i++ {
		s1, s2 := stops[i], stops[i+1]
		if t <= s2.Offset {
			f := 0.5
			if d := s2.Offset - s1.Offset; d > 0 {
				f = (t - s1.Offset) / d
			}
			return lerpColor(stopColor(s1), stopColor(s2), f)
		}
	}
	return stopColor(stops[len(stops)-1])
}

func stopColor(s svgtree.GradStop) color.NRGBA {
	c := color.NRGBA{A: 0xFF}
	if s.StopColor != nil {
		c = color.NRGBAModel.Convert(s.StopColor).(color.NRGBA)
	}
	c.A = uint8(float64(c.A)*s.Opacity + 0.5)
	return c
}

func lerpColor(c1, c2 color.NRGBA, f float64) color.NRGBA {
	l := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
	}
	return color.NRGBA{R: l(c1.R, c2.R), G: l(c1.G, c2.G), B: l(c1.B, c2.B), A: l(c1.A, c2.A)}
}
