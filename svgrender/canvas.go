package svgrender

import (
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgcanvas/svgtree"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformation matrices are already applied to the
// points before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the color for the current path
	SetColor(color svgtree.Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

// Filler draws the filled-in area of the paths
// sent to it
type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

// Stroker draws the outline of the paths sent to it
type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options svgtree.StrokeOptions)
}

// Canvas is the handle to an externally owned drawing surface.
// The canvas is borrowed for the duration of a render call and
// mutated in place; its lifecycle is entirely up to the caller.
//
// The render functions assume exclusive access to the canvas:
// concurrent calls targeting the same canvas must be serialized
// by the caller.
//
// Warning: a canvas holding its own transform state must be at
// identity when handed to the render functions; the coordinates
// sent to the drawers are final.
type Canvas interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}
