package srv

import (
	"testing"
	"time"

	"github.com/jypelle/monoscope/apimodel"
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/jypelle/monoscope/internal/srv/config"
	"github.com/jypelle/monoscope/internal/srv/device"
	"github.com/jypelle/monoscope/internal/srv/event"
	"github.com/jypelle/monoscope/internal/tv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServerApp(t *testing.T, effects config.EffectsParam) *ServerApp {
	serverConfig := &config.ServerConfig{
		ConfigDir:      t.TempDir(),
		SimulationMode: true,
		ServerParam: &config.ServerParam{
			Panel:   config.PanelParam{Driver: config.ILI9341_DRIVER, Width: 320, Height: 240},
			Effects: effects,
		},
	}
	// Simulation display not started: only the mirror is drawn.
	display := device.NewDisplay(serverConfig.Panel, true)
	app := newServerApp(serverConfig, display)
	app.apiEventChannel = make(chan event.ApiEvent)
	return app
}

func askStats(t *testing.T, app *ServerApp) apimodel.Stats {
	result := make(chan interface{}, 1)
	select {
	case app.apiEventChannel <- event.ApiEvent{Result: result, Data: event.ApiEventStatsData{}}:
	case <-time.After(5 * time.Second):
		t.Fatal("effect loop did not answer")
	}
	stats, ok := (<-result).(apimodel.Stats)
	require.True(t, ok)
	return stats
}

func TestApplyEffectBaseline(t *testing.T) {
	app := newTestServerApp(t, config.EffectsParam{Seed: 1})

	app.applyEffect(tv.RedrawEffect)

	snap := app.displayDevice.Snapshot().(*raster.Framebuffer)
	assert.Equal(t, raster.White, snap.Pixel(0, 0))
	assert.Equal(t, tv.GrayLevel(9), snap.Pixel(319, 239))
	assert.Equal(t, int64(1), app.stats.PatternDraws)
	assert.Equal(t, "redraw", app.stats.LastEffect)
	assert.Equal(t, int64(1), app.displayDevice.BlitCount())
}

func TestApplyEffectCounters(t *testing.T) {
	app := newTestServerApp(t, config.EffectsParam{Seed: 1})

	app.applyEffect(tv.NoiseEffect)
	for i := 0; i < 30; i++ {
		app.applyEffect(tv.FlickerEffect)
	}

	assert.Equal(t, int64(1), app.stats.NoiseBursts)
	assert.Equal(t, int64(30), app.stats.FlickerSteps)
	assert.Equal(t, int64(1), app.stats.FlickerShown)
	// 20 noise rows and 5 flicker rows.
	assert.Equal(t, int64(25), app.displayDevice.BlitCount())
}

func TestApplyEffectUsesEffectParams(t *testing.T) {
	app := newTestServerApp(t, config.EffectsParam{Seed: 1, NoiseLines: 3, FlickerPeriod: 1, FlickerLines: 2})

	app.applyEffect(tv.NoiseEffect)
	app.applyEffect(tv.FlickerEffect)

	assert.Equal(t, int64(5), app.displayDevice.BlitCount())
}

func TestEffectLoop(t *testing.T) {
	app := newTestServerApp(t, config.EffectsParam{Seed: 3, MinDelayMs: 1, MaxDelayMs: 3, PauseMs: 1})

	go app.effectLoop()

	deadline := time.Now().Add(5 * time.Second)
	var stats apimodel.Stats
	for time.Now().Before(deadline) {
		stats = askStats(t, app)
		if stats.NoiseBursts > 0 && stats.FlickerSteps > 0 && stats.PatternDraws > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.NotZero(t, stats.NoiseBursts)
	assert.NotZero(t, stats.FlickerSteps)
	assert.NotZero(t, stats.PatternDraws)
	assert.NotEmpty(t, stats.LastEffect)

	app.effectLoopAskDone <- true
	select {
	case <-app.effectLoopDone:
	case <-time.After(5 * time.Second):
		t.Fatal("effect loop did not stop")
	}
}

func TestWaitStops(t *testing.T) {
	app := newTestServerApp(t, config.EffectsParam{Seed: 1})

	go func() {
		app.effectLoopAskDone <- true
	}()
	assert.False(t, app.wait(time.Hour))
	assert.True(t, app.wait(time.Millisecond))
}
