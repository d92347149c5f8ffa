package svgrender_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcanvas/svgraster"
	"github.com/benoitkugler/svgcanvas/svgrender"
	"github.com/benoitkugler/svgcanvas/svgtree"
)

func TestVersion(t *testing.T) {
	expected := fmt.Sprintf("%d.%d.%d",
		svgrender.VersionMajor, svgrender.VersionMinor, svgrender.VersionPatch)
	if svgrender.Version != expected {
		t.Errorf("version string %s does not match constants %s", svgrender.Version, expected)
	}
}

// countingCanvas records whether a render call started painting
type countingCanvas struct {
	setups int
}

func (c *countingCanvas) SetupDrawers(willFill, willStroke bool) (svgrender.Filler, svgrender.Stroker) {
	c.setups++
	return nil, nil
}

func parseFile(t *testing.T, path string) *svgtree.Tree {
	t.Helper()
	tree, err := svgtree.ReadTree(path, svgtree.WarnErrorMode)
	if err != nil {
		t.Fatalf("can't parse %s: %s", path, err)
	}
	return tree
}

func TestCanvasUntouchedOnError(t *testing.T) {
	tree := parseFile(t, "../svgtree/testdata/shapes.svg")
	size := svgrender.Size{Width: 100, Height: 100}

	canvas := &countingCanvas{}
	svgrender.RenderToCanvas(nil, size, canvas)
	if canvas.setups != 0 {
		t.Error("nil tree should not touch the canvas")
	}

	svgrender.RenderToCanvasByID(tree, size, "no-such-node", canvas)
	if canvas.setups != 0 {
		t.Error("unknown id should not touch the canvas")
	}

	svgrender.RenderToCanvasByID(nil, size, "circle1", canvas)
	if canvas.setups != 0 {
		t.Error("nil tree should not touch the canvas")
	}

	svgrender.RenderToCanvas(tree, svgrender.Size{Width: 0, Height: 100}, canvas)
	if canvas.setups != 0 {
		t.Error("degenerate size should not touch the canvas")
	}

	empty, err := svgtree.ReadTreeStream(bytes.NewReader([]byte(`<svg></svg>`)), svgtree.IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	svgrender.RenderToCanvas(empty, size, canvas)
	if canvas.setups != 0 {
		t.Error("empty view box should not touch the canvas")
	}

	// a valid call does paint
	svgrender.RenderToCanvas(tree, size, canvas)
	if canvas.setups == 0 {
		t.Error("valid render should reach the canvas")
	}
}

func TestRenderUntouchedPixels(t *testing.T) {
	tree := parseFile(t, "../svgtree/testdata/shapes.svg")
	size := svgrender.Size{Width: 100, Height: 100}

	img := svgraster.RenderNodeToImage(tree, size, "no-such-node")
	for i, p := range img.Pix {
		if p != 0 {
			t.Fatalf("pixel byte %d modified on unknown id", i)
		}
	}
}

func TestRenderByID(t *testing.T) {
	tree := parseFile(t, "../svgtree/testdata/shapes.svg")
	size := svgrender.Size{Width: 100, Height: 100}

	full := svgraster.RenderToImage(tree, size)
	circle := svgraster.RenderNodeToImage(tree, size, "circle1")

	if bytes.Equal(full.Pix, circle.Pix) {
		t.Error("single node render should differ from full render")
	}

	blank := true
	for _, p := range circle.Pix {
		if p != 0 {
			blank = false
			break
		}
	}
	if blank {
		t.Error("single node render should paint something")
	}

	// a group id renders the whole subtree
	groups := parseFile(t, "../svgtree/testdata/groups.svg")
	layer := svgraster.RenderNodeToImage(groups, svgrender.Size{Width: 200, Height: 200}, "layer1")
	blank = true
	for _, p := range layer.Pix {
		if p != 0 {
			blank = false
			break
		}
	}
	if blank {
		t.Error("group render should paint its children")
	}
}

func TestRenderByIDMatchesSubtreeDocument(t *testing.T) {
	const full = `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="100" fill="#ffffee"/>
		<circle id="c" cx="50" cy="50" r="20" fill="red"/>
	</svg>`
	const only = `<svg viewBox="0 0 100 100">
		<circle id="c" cx="50" cy="50" r="20" fill="red"/>
	</svg>`

	treeFull, err := svgtree.ReadTreeStream(strings.NewReader(full), svgtree.IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	treeOnly, err := svgtree.ReadTreeStream(strings.NewReader(only), svgtree.IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}

	size := svgrender.Size{Width: 100, Height: 100}
	byID := svgraster.RenderNodeToImage(treeFull, size, "c")
	subtree := svgraster.RenderToImage(treeOnly, size)
	if !bytes.Equal(byID.Pix, subtree.Pix) {
		t.Error("by-id render should match the full render of the subtree alone")
	}
}

func TestRenderDeterminism(t *testing.T) {
	tree := parseFile(t, "../svgtree/testdata/gradient.svg")
	size := svgrender.Size{Width: 120, Height: 120}

	first := svgraster.RenderToImage(tree, size)
	second := svgraster.RenderToImage(tree, size)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two renders of the same tree should be identical")
	}
}

func TestRenderScaling(t *testing.T) {
	tree := parseFile(t, "../svgtree/testdata/shapes.svg")

	small := svgraster.RenderToImage(tree, svgrender.Size{Width: 50, Height: 50})
	if got := small.Bounds().Dx(); got != 50 {
		t.Errorf("unexpected image width %d", got)
	}
	large := svgraster.RenderToImage(tree, svgrender.Size{Width: 400, Height: 400})
	if got := large.Bounds().Dx(); got != 400 {
		t.Errorf("unexpected image width %d", got)
	}
}
