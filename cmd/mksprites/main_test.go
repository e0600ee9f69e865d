package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fbsnake/sprites"
)

func TestRenderSheetLayout(t *testing.T) {
	set := sprites.NewSet(10, sprites.DefaultPalette)
	img, err := renderSheet(set, 2)
	if err != nil {
		t.Fatalf("renderSheet: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5*12+2 || b.Dy() != 14 {
		t.Fatalf("bounds = %v, want 62x14", b)
	}

	// Gap pixels are black, tile corners carry the outline and head fill.
	if c := img.RGBAAt(0, 0); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0xFF {
		t.Fatalf("gap pixel = %v", c)
	}
	out := sprites.DefaultPalette.Outline
	if c := img.RGBAAt(2, 2); c.R != out.R || c.G != out.G || c.B != out.B {
		t.Fatalf("body corner = %v, want %v", c, out)
	}
	head := sprites.DefaultPalette.Head
	if c := img.RGBAAt(14, 2); c.R != head.R || c.G != head.G || c.B != head.B {
		t.Fatalf("head corner = %v, want %v", c, head)
	}
}

func TestWritePNG(t *testing.T) {
	img, err := renderSheet(sprites.NewSet(5, sprites.DefaultPalette), 1)
	if err != nil {
		t.Fatalf("renderSheet: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}
