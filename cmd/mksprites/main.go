// Command mksprites renders the snake tiles into a PNG sheet so the artwork
// can be checked without a framebuffer. Tiles are laid out left to right:
// body, then the heads for left, right, up and down.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"fbsnake/game"
	"fbsnake/gfx"
	"fbsnake/sprites"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output PNG file.")
		size    = flag.Int("size", 25, "Tile size in pixels.")
		gap     = flag.Int("gap", 2, "Pixels between tiles.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mksprites -out sheet.png [-size 25] [-gap 2]")
	}
	if *size < 3 || *gap < 0 {
		fatalf("size must be at least 3 and gap non-negative")
	}

	img, err := renderSheet(sprites.NewSet(*size, sprites.DefaultPalette), *gap)
	if err != nil {
		fatalf("render: %v", err)
	}
	if err := writePNG(*outPath, img); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// sheetDevice keeps the presented frame so it can be encoded.
type sheetDevice struct {
	w, h  int
	frame []byte
}

func (d *sheetDevice) Width() int       { return d.w }
func (d *sheetDevice) Height() int      { return d.h }
func (d *sheetDevice) StrideBytes() int { return d.w * gfx.BytesPerPixel }

func (d *sheetDevice) WriteFrame(frame []byte) error {
	d.frame = append(d.frame[:0], frame...)
	return nil
}

func sheetTiles(set *sprites.Set) []*gfx.Sprite {
	tiles := []*gfx.Sprite{set.Body}
	for d := game.Direction(0); d < game.NumDirections; d++ {
		tiles = append(tiles, set.HeadFor(d))
	}
	return tiles
}

func renderSheet(set *sprites.Set, gap int) (*image.RGBA, error) {
	tiles := sheetTiles(set)
	dev := &sheetDevice{w: len(tiles)*(set.Size+gap) + gap, h: set.Size + 2*gap}
	c, err := gfx.NewCanvas(dev)
	if err != nil {
		return nil, err
	}
	for i, t := range tiles {
		c.BlitSprite(gap+i*(set.Size+gap), gap, t)
	}
	if err := c.Present(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, dev.w, dev.h))
	for i := 0; i+3 < len(dev.frame); i += gfx.BytesPerPixel {
		img.Pix[i+0] = dev.frame[i+2]
		img.Pix[i+1] = dev.frame[i+1]
		img.Pix[i+2] = dev.frame[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
