//go:build cgo

package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	beepSampleRate = 44100
	beepHz         = 880
	beepMillis     = 60
	beepAmplitude  = 6000
)

// hostBeeper plays a short square-wave chirp through ebiten's audio
// package. Playback runs on ebiten's audio goroutine so Beep returns at once.
type hostBeeper struct {
	mu     sync.Mutex
	ctx    *audio.Context
	pcm    []byte
	player *audio.Player
}

func newHostBeeper() *hostBeeper {
	return &hostBeeper{
		ctx: audio.NewContext(beepSampleRate),
		pcm: squareWave(beepSampleRate, beepHz, beepMillis, beepAmplitude),
	}
}

func (b *hostBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		_ = b.player.Close()
	}
	b.player = b.ctx.NewPlayerFromBytes(b.pcm)
	b.player.Play()
}

// squareWave renders 16-bit little-endian stereo PCM, the format ebiten's
// audio context expects.
func squareWave(sampleRate, hz, millis int, amp int16) []byte {
	n := sampleRate * millis / 1000
	half := sampleRate / hz / 2
	if half <= 0 {
		half = 1
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		s := amp
		if (i/half)%2 == 1 {
			s = -amp
		}
		out[i*4+0] = byte(s)
		out[i*4+1] = byte(s >> 8)
		out[i*4+2] = byte(s)
		out[i*4+3] = byte(s >> 8)
	}
	return out
}
