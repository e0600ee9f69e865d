package app

import "fbsnake/game"

type keyKind uint8

const (
	keyIgnored keyKind = iota
	keyMove
	keyQuit
	keyPause
	keyRestart
)

type key struct {
	kind keyKind
	dir  game.Direction
}

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// nextKey decodes one key from the front of b. It reports ok=false when b
// ends inside an escape sequence that may still be completed by the next
// read. With flush set nothing is held back: a lone ESC is the Escape key and
// an unfinished sequence is dropped.
func nextKey(b []byte, flush bool) (consumed int, k key, ok bool) {
	if len(b) == 0 {
		return 0, key{}, false
	}

	if b[0] == keyEsc {
		return parseEscapeKey(b, flush)
	}

	switch b[0] {
	case 'h', 'H':
		return 1, key{kind: keyMove, dir: game.Left}, true
	case 'l', 'L':
		return 1, key{kind: keyMove, dir: game.Right}, true
	case 'k', 'K':
		return 1, key{kind: keyMove, dir: game.Up}, true
	case 'j', 'J':
		return 1, key{kind: keyMove, dir: game.Down}, true
	case 'q', 'Q', keyCtrlC:
		return 1, key{kind: keyQuit}, true
	case 'p', 'P', ' ':
		return 1, key{kind: keyPause}, true
	case 'r', 'R':
		return 1, key{kind: keyRestart}, true
	}
	return 1, key{}, true
}

func parseEscapeKey(b []byte, flush bool) (consumed int, k key, ok bool) {
	if len(b) < 2 {
		if flush {
			return 1, key{kind: keyQuit}, true
		}
		return 0, key{}, false
	}
	if b[1] != '[' {
		return 1, key{kind: keyQuit}, true
	}
	if len(b) < 3 {
		if flush {
			return 2, key{}, true
		}
		return 0, key{}, false
	}

	switch b[2] {
	case 'A':
		return 3, key{kind: keyMove, dir: game.Up}, true
	case 'B':
		return 3, key{kind: keyMove, dir: game.Down}, true
	case 'C':
		return 3, key{kind: keyMove, dir: game.Right}, true
	case 'D':
		return 3, key{kind: keyMove, dir: game.Left}, true
	}

	// Any other CSI sequence runs to a final byte in 0x40..0x7e.
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1, key{}, true
		}
	}
	if flush {
		return len(b), key{}, true
	}
	return 0, key{}, false
}

// keyDecoder turns raw keyboard bytes into keys, carrying a partial escape
// sequence over to the next read.
type keyDecoder struct {
	buf []byte
}

const maxHeldKeyBytes = 16

// decode appends p and returns every complete key. When p is empty anything
// held from the previous read is flushed.
func (d *keyDecoder) decode(p []byte, out []key) []key {
	flush := len(p) == 0
	d.buf = append(d.buf, p...)
	for len(d.buf) > 0 {
		n, k, ok := nextKey(d.buf, flush || len(d.buf) > maxHeldKeyBytes)
		if !ok {
			break
		}
		d.buf = d.buf[n:]
		if k.kind != keyIgnored {
			out = append(out, k)
		}
	}
	if len(d.buf) == 0 {
		d.buf = nil
	}
	return out
}
