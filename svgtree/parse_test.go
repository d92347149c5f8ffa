package svgtree

import (
	"image/color"
	"strings"
	"testing"
)

func parseFile(t *testing.T, path string) *Tree {
	t.Helper()
	tree, err := ReadTree(path, WarnErrorMode)
	if err != nil {
		t.Fatalf("can't parse %s: %s", path, err)
	}
	return tree
}

func TestParseFiles(t *testing.T) {
	for _, p := range []string{
		"shapes", "groups", "gradient", "strokes", "use",
	} {
		parseFile(t, "testdata/"+p+".svg")
	}
}

func TestViewBox(t *testing.T) {
	tree := parseFile(t, "testdata/shapes.svg")
	if tree.ViewBox != (Bounds{0, 0, 100, 100}) {
		t.Errorf("unexpected view box %v", tree.ViewBox)
	}
	if tree.Width != "100" || tree.Height != "100" {
		t.Errorf("unexpected dimensions %s x %s", tree.Width, tree.Height)
	}
	if len(tree.Titles) != 1 || strings.TrimSpace(tree.Titles[0]) != "Basic shapes" {
		t.Errorf("unexpected titles %v", tree.Titles)
	}
	if len(tree.Descriptions) != 1 {
		t.Errorf("unexpected descriptions %v", tree.Descriptions)
	}
}

func TestNodeByID(t *testing.T) {
	tree := parseFile(t, "testdata/groups.svg")

	if n := tree.NodeByID("layer1"); n == nil {
		t.Fatal("layer1 not found")
	} else if _, isGroup := n.(*Group); !isGroup {
		t.Errorf("layer1 should be a group, got %T", n)
	}

	if n := tree.NodeByID("dot"); n == nil {
		t.Fatal("dot not found")
	} else if _, isShape := n.(*Shape); !isShape {
		t.Errorf("dot should be a shape, got %T", n)
	}

	if n := tree.NodeByID("missing"); n != nil {
		t.Errorf("expected nil for unknown id, got %v", n)
	}
	if n := tree.NodeByID(""); n != nil {
		t.Errorf("expected nil for empty id, got %v", n)
	}
}

func TestStyleInheritance(t *testing.T) {
	tree := parseFile(t, "testdata/groups.svg")

	dot, ok := tree.NodeByID("dot").(*Shape)
	if !ok {
		t.Fatal("dot not found")
	}
	// translate(20, 10) then scale(2)
	m := dot.Style.Transform
	if m.A != 2 || m.D != 2 || m.E != 20 || m.F != 10 {
		t.Errorf("unexpected absolute transform %v", m)
	}
	if dot.Style.FillOpacity != 0.8 {
		t.Errorf("group opacity not folded in: %v", dot.Style.FillOpacity)
	}

	tri, ok := tree.NodeByID("tri").(*Shape)
	if !ok {
		t.Fatal("tri not found")
	}
	if tri.Style.Transform != Identity {
		t.Errorf("unexpected transform on tri: %v", tri.Style.Transform)
	}
	if tri.Style.FillOpacity != 1 {
		t.Errorf("unexpected opacity on tri: %v", tri.Style.FillOpacity)
	}
}

func TestParseColors(t *testing.T) {
	tree := parseFile(t, "testdata/shapes.svg")

	circle, ok := tree.NodeByID("circle1").(*Shape)
	if !ok {
		t.Fatal("circle1 not found")
	}
	green := PlainColor{NRGBA: color.NRGBA{R: 0, G: 128, B: 0, A: 0xFF}}
	if circle.Style.FillerColor != green {
		t.Errorf("unexpected fill %v", circle.Style.FillerColor)
	}

	wave, ok := tree.NodeByID("wave").(*Shape)
	if !ok {
		t.Fatal("wave not found")
	}
	if wave.Style.FillerColor != nil {
		t.Errorf("fill none should disable filling, got %v", wave.Style.FillerColor)
	}
	orange := PlainColor{NRGBA: color.NRGBA{R: 0xFF, G: 0x88, B: 0, A: 0xFF}}
	if wave.Style.LinerColor != orange {
		t.Errorf("unexpected stroke %v", wave.Style.LinerColor)
	}
	if wave.Style.LineWidth != 2 {
		t.Errorf("unexpected stroke width %v", wave.Style.LineWidth)
	}
}

func TestParseSVGColor(t *testing.T) {
	for _, test := range []struct {
		input string
		want  color.NRGBA
		none  bool
	}{
		{"#fff", color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}, false},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xFF}, false},
		{"rgb(255, 0, 10)", color.NRGBA{255, 0, 10, 0xFF}, false},
		{"rgb(100%, 0%, 50%)", color.NRGBA{255, 0, 128, 0xFF}, false},
		{"black", color.NRGBA{0, 0, 0, 0xFF}, false},
		{"none", color.NRGBA{}, true},
		{"transparent", color.NRGBA{}, true},
	} {
		got, err := parseSVGColor(test.input)
		if err != nil {
			t.Errorf("parse %s: %s", test.input, err)
			continue
		}
		if got.valid == test.none {
			t.Errorf("parse %s: valid = %v", test.input, got.valid)
		}
		if got.valid && got.color != test.want {
			t.Errorf("parse %s: got %v, want %v", test.input, got.color, test.want)
		}
	}

	if _, err := parseSVGColor("not-a-color"); err == nil {
		t.Error("expected error for unknown color name")
	}
}

func TestGradients(t *testing.T) {
	tree := parseFile(t, "testdata/gradient.svg")

	rect, ok := tree.NodeByID("linRect").(*Shape)
	if !ok {
		t.Fatal("linRect not found")
	}
	grad, ok := rect.Style.FillerColor.(Gradient)
	if !ok {
		t.Fatalf("expected gradient fill, got %T", rect.Style.FillerColor)
	}
	if dir, ok := grad.Direction.(Linear); !ok || dir != (Linear{0, 0, 1, 0}) {
		t.Errorf("unexpected direction %v", grad.Direction)
	}
	if len(grad.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(grad.Stops))
	}
	if grad.Stops[1].Offset != 1 || grad.Stops[1].Opacity != 0.5 {
		t.Errorf("unexpected final stop %v", grad.Stops[1])
	}

	circle, ok := tree.NodeByID("radCircle").(*Shape)
	if !ok {
		t.Fatal("radCircle not found")
	}
	grad, ok = circle.Style.FillerColor.(Gradient)
	if !ok {
		t.Fatalf("expected gradient fill, got %T", circle.Style.FillerColor)
	}
	if _, ok := grad.Direction.(Radial); !ok {
		t.Errorf("unexpected direction %v", grad.Direction)
	}
}

func TestCompilePath(t *testing.T) {
	var c pathCursor
	if err := c.compilePath("M10 10 L90 90 Z"); err != nil {
		t.Fatal(err)
	}
	if len(c.path) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(c.path))
	}
	if _, ok := c.path[0].(MoveTo); !ok {
		t.Errorf("expected MoveTo, got %T", c.path[0])
	}
	if _, ok := c.path[1].(LineTo); !ok {
		t.Errorf("expected LineTo, got %T", c.path[1])
	}
	if _, ok := c.path[2].(Close); !ok {
		t.Errorf("expected Close, got %T", c.path[2])
	}

	c = pathCursor{}
	if err := c.compilePath("m 10,90 q 15,-20 30,0 t 30,0"); err != nil {
		t.Fatal(err)
	}
	quads := 0
	for _, op := range c.path {
		if _, ok := op.(QuadTo); ok {
			quads++
		}
	}
	if quads != 2 {
		t.Errorf("expected 2 quadratic segments, got %d", quads)
	}

	c = pathCursor{}
	if err := c.compilePath("M10 10 L90"); err == nil {
		t.Error("expected param mismatch error")
	}

	c = pathCursor{errorMode: StrictErrorMode}
	if err := c.compilePath("M10 10 X20 20"); err == nil {
		t.Error("expected unknown command error in strict mode")
	}
}

func TestEllipsePath(t *testing.T) {
	var c pathCursor
	c.ellipseAt(50, 50, 20, 10)
	cubics := 0
	for _, op := range c.path {
		if _, ok := op.(CubicTo); ok {
			cubics++
		}
	}
	if cubics == 0 {
		t.Fatalf("ellipse should compile to cubic segments, got %s", c.path)
	}

	// circle and ellipse elements go through the same reduction
	tree := parseFile(t, "testdata/shapes.svg")
	circle, ok := tree.NodeByID("circle1").(*Shape)
	if !ok {
		t.Fatal("circle1 not found")
	}
	if len(circle.Path) <= 2 {
		t.Fatalf("circle path is degenerate: %s", circle.Path)
	}
}

func TestStrictMode(t *testing.T) {
	const doc = `<svg viewBox="0 0 10 10"><text x="0" y="0">hi</text></svg>`
	if _, err := ReadTreeStream(strings.NewReader(doc), StrictErrorMode); err == nil {
		t.Error("expected error for unsupported element in strict mode")
	}
	if _, err := ReadTreeStream(strings.NewReader(doc), IgnoreErrorMode); err != nil {
		t.Errorf("unexpected error in ignore mode: %s", err)
	}
}

func TestInvalidDocument(t *testing.T) {
	if _, err := ReadTreeStream(strings.NewReader("not xml at all"), IgnoreErrorMode); err == nil {
		t.Error("expected error for non xml input")
	}
}

func TestUseExpansion(t *testing.T) {
	tree := parseFile(t, "testdata/use.svg")
	shapes := 0
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Shape:
			shapes++
		case *Group:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	walk(tree.Root)
	if shapes != 3 {
		t.Errorf("expected 3 instantiated shapes, got %d", shapes)
	}
}
