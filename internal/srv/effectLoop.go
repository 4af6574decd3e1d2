package srv

import (
	"time"

	"github.com/go-errors/errors"
	"github.com/jypelle/monoscope/internal/srv/event"
	"github.com/jypelle/monoscope/internal/tv"
	"github.com/sirupsen/logrus"
)

// effectLoop waits a random delay, applies a random effect, pauses, and
// starts again until asked to stop. Only this goroutine draws.
func (s *ServerApp) effectLoop() {
	for s.wait(tv.RandomDelay(s.rng, s.minDelay, s.maxDelay)) {
		s.applyEffect(tv.PickEffect(s.rng))

		if !s.wait(s.pause) {
			break
		}
	}
	s.effectLoopDone <- true
}

// wait blocks for d while answering api requests. It returns false when the
// loop is asked to stop.
func (s *ServerApp) wait(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			return true
		case ev := <-s.apiEventChannel:
			s.handleApiEvent(ev)
		case <-s.effectLoopAskDone:
			return false
		}
	}
}

func (s *ServerApp) handleApiEvent(ev event.ApiEvent) {
	switch ev.Data.(type) {
	case event.ApiEventStatsData:
		logrus.Debugf("Receive api stats event")
		stats := s.stats
		stats.FlickerCycle = s.effects.FlickerCycle()
		ev.Result <- stats
	default:
		ev.Result <- nil
	}
}

// applyEffect runs one effect. Display failures are not recoverable.
func (s *ServerApp) applyEffect(effect tv.Effect) {
	logrus.Debugf("Apply %s effect", effect)

	var err error
	switch effect {
	case tv.NoiseEffect:
		err = s.effects.AddNoise()
		s.stats.NoiseBursts++
	case tv.FlickerEffect:
		var shown bool
		shown, err = s.effects.Flicker()
		s.stats.FlickerSteps++
		if shown {
			s.stats.FlickerShown++
		}
	default:
		err = s.effects.DrawPattern()
		s.stats.PatternDraws++
	}
	s.stats.LastEffect = effect.String()
	s.stats.LastEffectAt = time.Now()

	if err != nil {
		if stackErr, ok := err.(*errors.Error); ok {
			logrus.Debugf("%s", stackErr.ErrorStack())
		}
		logrus.Fatalf("Display failure during %s effect: %v", effect, err)
	}
}
