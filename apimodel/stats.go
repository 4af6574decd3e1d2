package apimodel

import "time"

// Stats counts what the effect loop did since start.
type Stats struct {
	StartedAt    time.Time `json:"started_at"`
	PatternDraws int64     `json:"pattern_draws"`
	NoiseBursts  int64     `json:"noise_bursts"`
	FlickerSteps int64     `json:"flicker_steps"`
	FlickerShown int64     `json:"flicker_shown"`
	FlickerCycle int       `json:"flicker_cycle"`
	Blits        int64     `json:"blits"`
	LastEffect   string    `json:"last_effect"`
	LastEffectAt time.Time `json:"last_effect_at"`
}
