// Implements a raster canvas to render SVG trees,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"io"

	"github.com/benoitkugler/svgcanvas/svgrender"
	"github.com/benoitkugler/svgcanvas/svgtree"
	"github.com/srwiley/rasterx"
)

// assert interface conformance
var (
	_ svgrender.Canvas  = (*Renderer)(nil)
	_ svgrender.Filler  = (*filler)(nil)
	_ svgrender.Stroker = (*dasher)(nil)
)

// Renderer is a rasterizing canvas.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
type Renderer struct {
	dasher *dasher // to avoid shared state
	filler *filler // we use separated instances
}

// filler resolves the SVG paint before delegating
// to rasterx
type filler struct {
	*rasterx.Filler
}

// dasher translates the stroke options before delegating
// to rasterx
type dasher struct {
	*rasterx.Dasher
}

// NewRenderer returns a renderer with default values,
// rasterizing through the given scanner.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: &dasher{Dasher: rasterx.NewDasher(width, height, scanner)},
		filler: &filler{Filler: rasterx.NewFiller(width, height, scanner)},
	}
}

// SetupDrawers implements svgrender.Canvas
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgrender.Filler, s svgrender.Stroker) {
	if willFill {
		f = rd.filler
	}
	if willStroke {
		s = rd.dasher
	}
	return f, s
}

// RenderToImage renders the whole tree into a new image
// of the given size.
func RenderToImage(tree *svgtree.Tree, size svgrender.Size) *image.RGBA {
	img, rd := newImageRenderer(size)
	svgrender.RenderToCanvas(tree, size, rd)
	return img
}

// RenderNodeToImage renders the subtree rooted at the node with the
// given id into a new image of the given size. If the id matches no
// node, the image is returned fully transparent.
func RenderNodeToImage(tree *svgtree.Tree, size svgrender.Size, id string) *image.RGBA {
	img, rd := newImageRenderer(size)
	svgrender.RenderToCanvasByID(tree, size, id, rd)
	return img
}

// RenderSVGToImage parses the SVG source and renders it at its
// view box size, using a ScannerGV instance.
func RenderSVGToImage(svg io.Reader) (*image.RGBA, error) {
	tree, err := svgtree.ReadTreeStream(svg, svgtree.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	size := svgrender.Size{Width: tree.ViewBox.W, Height: tree.ViewBox.H}
	img, rd := newImageRenderer(size)
	svgrender.RenderToCanvas(tree, size, rd)
	return img, nil
}

func newImageRenderer(size svgrender.Size) (*image.RGBA, *Renderer) {
	w, h := int(size.Width+0.5), int(size.Height+0.5)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return img, NewRenderer(w, h, scanner)
}

func toRasterxGradient(grad svgtree.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgtree.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgtree.Radial:
		points[0], points[1], points[2], points[3], points[4], _ = dir[0], dir[1], dir[2], dir[3], dir[4], dir[5] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgtree.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgtree.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case svgtree.Gradient:
		if fillerColor.Units == svgtree.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.Bounds.X, fillerColor.Bounds.Y = mnx, mny
			fillerColor.Bounds.W, fillerColor.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(fillerColor)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

func (f *filler) SetColor(color svgtree.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Scanner)
}

func (d *dasher) SetColor(color svgtree.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, d.Scanner)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgtree.Round:     rasterx.Round,
		svgtree.Bevel:     rasterx.Bevel,
		svgtree.Miter:     rasterx.Miter,
		svgtree.MiterClip: rasterx.MiterClip,
		svgtree.Arc:       rasterx.Arc,
		svgtree.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgtree.ButtCap:      rasterx.ButtCap,
		svgtree.SquareCap:    rasterx.SquareCap,
		svgtree.RoundCap:     rasterx.RoundCap,
		svgtree.CubicCap:     rasterx.CubicCap,
		svgtree.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgtree.FlatGap:      rasterx.FlatGap,
		svgtree.RoundGap:     rasterx.RoundGap,
		svgtree.CubicGap:     rasterx.CubicGap,
		svgtree.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (d *dasher) SetStrokeOptions(options svgtree.StrokeOptions) {
	d.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
