package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func checkPNG(t *testing.T, path string, width int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != width {
		t.Errorf("unexpected width %d, want %d", img.Bounds().Dx(), width)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "shapes.png")
	if err := run("../../svgtree/testdata/shapes.svg", out, 0, 0, ""); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, out, 100)

	outNode := filepath.Join(dir, "circle.png")
	if err := run("../../svgtree/testdata/shapes.svg", outNode, 50, 50, "circle1"); err != nil {
		t.Fatal(err)
	}
	checkPNG(t, outNode, 50)

	if err := run(filepath.Join(dir, "missing.svg"), out, 0, 0, ""); err == nil {
		t.Error("expected error for missing input file")
	}
}
