//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns ebiten key state into the byte stream a terminal would
// send: printable ASCII as is, arrows as ESC [ A..D, Escape as 0x1b.
type hostKeyboard struct {
	buf []byte
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

func (k *hostKeyboard) ReadKeys(p []byte) (int, error) {
	n := copy(p, k.buf)
	k.buf = k.buf[:copy(k.buf, k.buf[n:])]
	return n, nil
}

var arrowSeqs = []struct {
	key ebiten.Key
	seq string
}{
	{ebiten.KeyArrowUp, "\x1b[A"},
	{ebiten.KeyArrowDown, "\x1b[B"},
	{ebiten.KeyArrowRight, "\x1b[C"},
	{ebiten.KeyArrowLeft, "\x1b[D"},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r < 0x80 {
			k.buf = append(k.buf, byte(r))
		}
	}
	for _, a := range arrowSeqs {
		if inpututil.IsKeyJustPressed(a.key) {
			k.buf = append(k.buf, a.seq...)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		k.buf = append(k.buf, 0x1b)
	}
	// Keep a slow consumer from growing the buffer without bound.
	if len(k.buf) > 256 {
		k.buf = k.buf[len(k.buf)-256:]
	}
}
