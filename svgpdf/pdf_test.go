package svgpdf

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgcanvas/svgrender"
	"github.com/benoitkugler/svgcanvas/svgtree"
)

func TestBoundingBox(t *testing.T) {
	p := pather{pdf: gofpdf.New("", "", "", "")}
	p.pdf.AddPage()

	p.Start(fToFixed(10, 10))
	p.Line(fToFixed(50, 10))
	p.QuadBezier(fToFixed(60, 30), fToFixed(50, 50))
	p.CubeBezier(fToFixed(40, 70), fToFixed(20, 70), fToFixed(10, 50))
	p.Stop(true)

	bb := p.boundingBox
	if bb.Min.X != fixed.Int26_6(10*64) || bb.Min.Y != fixed.Int26_6(10*64) {
		t.Errorf("unexpected bounding box min %v", bb.Min)
	}
	// the control points pull the curve beyond x=50
	if bb.Max.X <= fixed.Int26_6(50*64) {
		t.Errorf("quadratic extent not accounted for: %v", bb.Max)
	}
	if bb.Max.Y <= fixed.Int26_6(50*64) {
		t.Errorf("cubic extent not accounted for: %v", bb.Max)
	}

	p.Clear()
	if p.boundingBox != (fixed.Rectangle26_6{}) {
		t.Error("Clear should reset the bounding box")
	}
}

func TestCurveBoundingBox(t *testing.T) {
	// a line box is just its end points
	rect := computeBoundingBox(line{fToFixed(0, 0), fToFixed(10, 5)})
	want := fixed.Rectangle26_6{Min: fToFixed(0, 0), Max: fToFixed(10, 5)}
	if rect != want {
		t.Errorf("got %v, want %v", rect, want)
	}

	// a symmetric quadratic peaks at t = 0.5, y = 5
	rect = computeBoundingBox(quadBezier{fToFixed(0, 0), fToFixed(5, 10), fToFixed(10, 0)})
	if rect.Max.Y != fixed.Int26_6(5*64) {
		t.Errorf("unexpected quadratic extent %v", rect.Max)
	}
}

func TestGradientFallbackColor(t *testing.T) {
	stops := []svgtree.GradStop{
		{StopColor: color.NRGBA{R: 255, A: 255}, Offset: 0, Opacity: 1},
		{StopColor: color.NRGBA{B: 255, A: 255}, Offset: 1, Opacity: 1},
	}

	if got, want := gradientColorAt(stops, 0.5), (color.NRGBA{R: 128, B: 128, A: 255}); got != want {
		t.Errorf("midpoint: got %v, want %v", got, want)
	}
	// offsets outside the stops clamp to the end colors
	if got, want := gradientColorAt(stops, -1), (color.NRGBA{R: 255, A: 255}); got != want {
		t.Errorf("below range: got %v, want %v", got, want)
	}
	if got, want := gradientColorAt(stops, 2), (color.NRGBA{B: 255, A: 255}); got != want {
		t.Errorf("above range: got %v, want %v", got, want)
	}
	if got, want := gradientColorAt(nil, 0.5), (color.NRGBA{A: 255}); got != want {
		t.Errorf("no stops: got %v, want %v", got, want)
	}

	// stop opacity folds into the alpha channel
	half := []svgtree.GradStop{{StopColor: color.NRGBA{R: 255, A: 255}, Offset: 0, Opacity: 0.5}}
	if got := gradientColorAt(half, 0); got.A != 128 {
		t.Errorf("stop opacity ignored: got alpha %d", got.A)
	}
}

func TestGradientFillColor(t *testing.T) {
	// a gradient paint must set its own color, not reuse the
	// previous path's
	tree, err := svgtree.ReadTree("../svgtree/testdata/gradient.svg", svgtree.WarnErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	rect, ok := tree.NodeByID("linRect").(*svgtree.Shape)
	if !ok {
		t.Fatal("linRect not found")
	}
	grad, ok := rect.Style.FillerColor.(svgtree.Gradient)
	if !ok {
		t.Fatalf("expected gradient fill, got %T", rect.Style.FillerColor)
	}
	p := &pather{pdf: nil}
	c := p.gradientFallback(grad)
	if (c == color.NRGBA{}) || (c == color.NRGBA{A: 255}) {
		t.Errorf("fallback should derive a color from the stops, got %v", c)
	}
}

func TestRenderToPDF(t *testing.T) {
	for _, p := range []string{
		"shapes", "groups", "gradient", "strokes", "use",
	} {
		tree, err := svgtree.ReadTree("../svgtree/testdata/"+p+".svg", svgtree.WarnErrorMode)
		if err != nil {
			t.Fatalf("can't parse %s: %s", p, err)
		}
		var buf bytes.Buffer
		size := svgrender.Size{Width: tree.ViewBox.W, Height: tree.ViewBox.H}
		if err := RenderToPDF(tree, size, &buf); err != nil {
			t.Fatalf("can't render %s: %s", p, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("%s: output is not a PDF document", p)
		}
	}
}

func TestRenderSVGToPDF(t *testing.T) {
	f, err := os.Open("../svgtree/testdata/gradient.svg")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	out := filepath.Join(t.TempDir(), "gradient.pdf")
	if err := RenderSVGToPDF(f, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
}
