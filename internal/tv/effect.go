package tv

import (
	"math/rand"
	"time"
)

const (
	DefaultMinDelay = 100 * time.Millisecond
	DefaultMaxDelay = 2000 * time.Millisecond
	DefaultPause    = 50 * time.Millisecond
)

type Effect int

const (
	NoiseEffect Effect = iota
	FlickerEffect
	RedrawEffect
)

func (e Effect) String() string {
	switch e {
	case NoiseEffect:
		return "noise"
	case FlickerEffect:
		return "flicker"
	case RedrawEffect:
		return "redraw"
	default:
		return "unknown"
	}
}

// PickEffect draws the next effect: 60% noise, 20% flicker, 20% redraw.
func PickEffect(rng *rand.Rand) Effect {
	return EffectFor(rng.Uint32() % 10)
}

// EffectFor maps a draw in [0,10) to an effect.
func EffectFor(draw uint32) Effect {
	switch {
	case draw < 6:
		return NoiseEffect
	case draw < 8:
		return FlickerEffect
	default:
		return RedrawEffect
	}
}

// RandomDelay returns a uniformly random duration in [min, max).
func RandomDelay(rng *rand.Rand, min, max time.Duration) time.Duration {
	minMs := min.Milliseconds()
	span := max.Milliseconds() - minMs
	if span <= 0 {
		return min
	}
	return time.Duration(minMs+int64(rng.Uint32())%span) * time.Millisecond
}
