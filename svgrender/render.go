// Binds a parsed render tree (see svgtree) to an externally supplied
// drawing canvas. The canvas is abstracted by the Canvas interface,
// implemented for example by svgraster (raster images) or svgpdf
// (PDF documents).
//
// Both entry points are synchronous and stateless: they run to
// completion on the calling thread, and the canvas mutation is
// visible as soon as they return. A tree may be shared by concurrent
// renders targeting distinct canvases; a canvas must not.
package svgrender

import (
	"errors"

	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgcanvas/svgtree"
)

// Size describes the target viewport,
// in canvas coordinate units.
type Size struct {
	Width, Height float64
}

var (
	errNilTree      = errors.New("nil render tree")
	errEmptyViewBox = errors.New("empty view box")
	errEmptySize    = errors.New("degenerate target size")
)

// RenderToCanvas renders the whole tree onto the canvas, scaling the
// tree view box to the given size. The canvas is mutated in place; on
// error (nil tree, empty view box, degenerate size) it is left
// completely untouched, and no diagnostic is surfaced.
//
// Warning: the canvas must not have a transform.
func RenderToCanvas(tree *svgtree.Tree, size Size, canvas Canvas) {
	_ = render(tree, size, canvas, nil)
}

// RenderToCanvasByID renders the subtree rooted at the node whose id
// attribute is `id` onto the canvas, scaling the tree view box to the
// given size. If no node matches, or on any other error, the canvas
// is left completely untouched.
//
// Warning: the canvas must not have a transform.
func RenderToCanvasByID(tree *svgtree.Tree, size Size, id string, canvas Canvas) {
	if tree == nil {
		return
	}
	node := tree.NodeByID(id)
	if node == nil {
		return
	}
	_ = render(tree, size, canvas, node)
}

// render resolves every precondition before issuing the first paint
// command, so that an error return implies an untouched canvas.
// A nil node selects the whole tree.
func render(tree *svgtree.Tree, size Size, canvas Canvas, node svgtree.Node) error {
	if tree == nil {
		return errNilTree
	}
	if node == nil {
		node = tree.Root
		if node == nil {
			return errNilTree
		}
	}
	ts, err := viewBoxTransform(tree.ViewBox, size)
	if err != nil {
		return err
	}
	for _, shape := range appendShapes(nil, node) {
		drawShape(canvas, shape, ts)
	}
	return nil
}

// viewBoxTransform maps the view box onto a viewport of the given size
func viewBoxTransform(vb svgtree.Bounds, size Size) (svgtree.Matrix2D, error) {
	if vb.W == 0 || vb.H == 0 {
		return svgtree.Identity, errEmptyViewBox
	}
	if size.Width <= 0 || size.Height <= 0 {
		return svgtree.Identity, errEmptySize
	}
	return svgtree.Identity.
		Scale(size.Width/vb.W, size.Height/vb.H).
		Translate(-vb.X, -vb.Y), nil
}

// appendShapes collects the shapes of the subtree rooted at `n`,
// in document order
func appendShapes(dst []*svgtree.Shape, n svgtree.Node) []*svgtree.Shape {
	switch n := n.(type) {
	case *svgtree.Shape:
		dst = append(dst, n)
	case *svgtree.Group:
		for _, child := range n.Children {
			dst = appendShapes(dst, child)
		}
	}
	return dst
}

// drawShape paints one shape on the canvas, composing the viewport
// transform with the absolute transform of the shape.
func drawShape(canvas Canvas, shape *svgtree.Shape, viewTs svgtree.Matrix2D) {
	m := viewTs.Mult(shape.Style.Transform)

	filler, stroker := canvas.SetupDrawers(shape.Style.FillerColor != nil, shape.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(shape.Style.UseNonZeroWinding)

		appendPath(filler, shape.Path, m)
		filler.Stop(false)

		filler.SetColor(shape.Style.FillerColor, shape.Style.FillOpacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		lineGap := shape.Style.Join.LineGap
		if lineGap == svgtree.NilGap {
			lineGap = svgtree.DefaultStyle.Join.LineGap
		}
		lineCap := shape.Style.Join.TrailLineCap
		if lineCap == svgtree.NilCap {
			lineCap = svgtree.DefaultStyle.Join.TrailLineCap
		}
		leadLineCap := lineCap
		if shape.Style.Join.LeadLineCap != svgtree.NilCap {
			leadLineCap = shape.Style.Join.LeadLineCap
		}
		stroker.SetStrokeOptions(svgtree.StrokeOptions{
			LineWidth: fixed.Int26_6(shape.Style.LineWidth * 64),
			Join: svgtree.JoinOptions{
				MiterLimit:   shape.Style.Join.MiterLimit,
				LineJoin:     shape.Style.Join.LineJoin,
				LeadLineCap:  leadLineCap,
				TrailLineCap: lineCap,
				LineGap:      lineGap,
			},
			Dash: shape.Style.Dash,
		})

		appendPath(stroker, shape.Path, m)
		stroker.Stop(false)

		stroker.SetColor(shape.Style.LinerColor, shape.Style.LineOpacity)
		stroker.Draw()
	}
}

// appendPath sends the path operations to the drawer,
// after applying the transform m
func appendPath(d Drawer, p svgtree.Path, m svgtree.Matrix2D) {
	for _, op := range p {
		switch op := op.(type) {
		case svgtree.MoveTo:
			d.Stop(false) // implicit close if currently in path
			d.Start(m.TFixed(fixed.Point26_6(op)))
		case svgtree.LineTo:
			d.Line(m.TFixed(fixed.Point26_6(op)))
		case svgtree.QuadTo:
			d.QuadBezier(m.TFixed(op[0]), m.TFixed(op[1]))
		case svgtree.CubicTo:
			d.CubeBezier(m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2]))
		case svgtree.Close:
			d.Stop(true)
		}
	}
}
