package svgraster

import (
	"os"
	"testing"

	"github.com/benoitkugler/svgcanvas/svgrender"
	"github.com/benoitkugler/svgcanvas/svgtree"
)

func isBlank(pix []uint8) bool {
	for _, p := range pix {
		if p != 0 {
			return false
		}
	}
	return true
}

func rasterFile(t *testing.T, path string) {
	t.Helper()
	tree, err := svgtree.ReadTree(path, svgtree.WarnErrorMode)
	if err != nil {
		t.Fatalf("can't parse %s: %s", path, err)
	}
	size := svgrender.Size{Width: tree.ViewBox.W, Height: tree.ViewBox.H}
	img := RenderToImage(tree, size)
	if isBlank(img.Pix) {
		t.Errorf("%s rendered blank", path)
	}
}

func TestRasterFiles(t *testing.T) {
	for _, p := range []string{
		"shapes", "groups", "gradient", "strokes", "use",
	} {
		rasterFile(t, "../svgtree/testdata/"+p+".svg")
	}
}

func TestRasterStream(t *testing.T) {
	f, err := os.Open("../svgtree/testdata/shapes.svg")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := RenderSVGToImage(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("unexpected image size %v", img.Bounds())
	}
	if isBlank(img.Pix) {
		t.Error("image rendered blank")
	}
}

func TestRasterNode(t *testing.T) {
	tree, err := svgtree.ReadTree("../svgtree/testdata/shapes.svg", svgtree.WarnErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	size := svgrender.Size{Width: 100, Height: 100}

	img := RenderNodeToImage(tree, size, "circle1")
	if isBlank(img.Pix) {
		t.Error("node render blank")
	}

	img = RenderNodeToImage(tree, size, "ghost")
	if !isBlank(img.Pix) {
		t.Error("unknown id should leave the image untouched")
	}
}
