package hal

import "time"

// pacer turns wall-clock time into whole game ticks for backends that are
// called faster than the game runs. Time short of a full tick carries over.
type pacer struct {
	tick time.Duration
	last time.Time
	acc  time.Duration
}

func newPacer(tick time.Duration) *pacer {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &pacer{tick: tick}
}

// due reports how many ticks have elapsed by now. The first call starts the
// clock and reports one so the first frame appears at once.
func (p *pacer) due(now time.Time) int {
	if p.last.IsZero() {
		p.last = now
		p.acc = 0
		return 1
	}

	p.acc += now.Sub(p.last)
	p.last = now

	n := int(p.acc / p.tick)
	if n == 0 {
		return 0
	}
	p.acc %= p.tick
	return n
}
