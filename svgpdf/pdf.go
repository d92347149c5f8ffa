// Implements a PDF canvas to render SVG trees,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgcanvas/svgrender"
	"github.com/benoitkugler/svgcanvas/svgtree"
)

// assert interface conformance
var (
	_ svgrender.Canvas  = Renderer{}
	_ svgrender.Filler  = (*filler)(nil)
	_ svgrender.Stroker = (*stroker)(nil)
)

// Renderer writes paths to a gofpdf document.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf         *gofpdf.Fpdf
	a           fixed.Point26_6     // current point, used to compute boundingBox
	boundingBox fixed.Rectangle26_6 // bounding box for the current path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation, while
// also writing the path
type stroker struct {
	pather
}

// NewRenderer returns a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// SetupDrawers implements svgrender.Canvas
func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgrender.Filler, s svgrender.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// RenderToPDF renders the tree on a new one page document
// of the given size (in points), written to `out`.
func RenderToPDF(tree *svgtree.Tree, size svgrender.Size, out io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.AddPage()
	svgrender.RenderToCanvas(tree, size, NewRenderer(pdf))
	return pdf.Output(out)
}

// RenderSVGToPDF parses the SVG source and renders it
// into the given file, at its view box size.
func RenderSVGToPDF(svg io.Reader, pdfName string) error {
	tree, err := svgtree.ReadTreeStream(svg, svgtree.WarnErrorMode)
	if err != nil {
		return err
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: tree.ViewBox.W, Ht: tree.ViewBox.H},
	})
	pdf.AddPage()
	size := svgrender.Size{Width: tree.ViewBox.W, Height: tree.ViewBox.H}
	svgrender.RenderToCanvas(tree, size, NewRenderer(pdf))
	return pdf.OutputFileAndClose(pdfName)
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func fToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (p *pather) Clear() {
	p.boundingBox = fixed.Rectangle26_6{}
	p.a = fixed.Point26_6{}
}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
	p.a = a
	p.boundingBox = fixed.Rectangle26_6{Min: a, Max: a} // degenerate case
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
	p.boundingBox = p.boundingBox.Union(computeBoundingBox(line{p.a, b}))
	p.a = b
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
	p.boundingBox = p.boundingBox.Union(computeBoundingBox(quadBezier{p.a, b, c}))
	p.a = c
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	p.boundingBox = p.boundingBox.Union(computeBoundingBox(cubicBezier{p.a, b, c, d}))
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) SetColor(color svgtree.Pattern, opacity float64) {
	switch color := color.(type) {
	case svgtree.PlainColor:
		f.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
		opacity *= float64(color.A) / 255.
	case svgtree.Gradient:
		c := f.gradientFallback(color)
		f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		opacity *= float64(c.A) / 255.
	}
	f.pdf.SetAlpha(opacity, "")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(color svgtree.Pattern, opacity float64) {
	switch color := color.(type) {
	case svgtree.PlainColor:
		s.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
		opacity *= float64(color.A) / 255.
	case svgtree.Gradient:
		c := s.gradientFallback(color)
		s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		opacity *= float64(c.A) / 255.
	}
	s.pdf.SetAlpha(opacity, "")
}

func (s *stroker) SetStrokeOptions(options svgtree.StrokeOptions) {
	var capStyle, joinStyle string
	switch options.Join.TrailLineCap {
	case svgtree.RoundCap:
		capStyle = "round"
	case svgtree.SquareCap:
		capStyle = "square"
	default:
		capStyle = "butt"
	}
	switch options.Join.LineJoin {
	case svgtree.Round:
		joinStyle = "round"
	case svgtree.Miter:
		joinStyle = "miter"
	default:
		joinStyle = "bevel"
	}

	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyle)
	s.pdf.SetLineJoinStyle(joinStyle)
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("S")
}
