package srv

import (
	"math/rand"
	"os"
	"time"

	"github.com/jypelle/monoscope/apimodel"
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/jypelle/monoscope/internal/srv/config"
	"github.com/jypelle/monoscope/internal/srv/device"
	"github.com/jypelle/monoscope/internal/srv/event"
	"github.com/jypelle/monoscope/internal/tv"
	"github.com/jypelle/monoscope/internal/version"
	"github.com/sirupsen/logrus"
)

type ServerApp struct {
	*config.ServerConfig
	displayDevice *device.Display
	apiDevice     *device.Api

	rng      *rand.Rand
	effects  *tv.Set
	minDelay time.Duration
	maxDelay time.Duration
	pause    time.Duration
	stats    apimodel.Stats

	apiEventChannel chan event.ApiEvent

	effectLoopAskDone chan bool
	effectLoopDone    chan bool
}

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of monoscope server %s ...", version.String())

	serverConfig := config.NewServerConfig(configDir, debugMode, simulationMode)
	app := newServerApp(serverConfig, device.NewDisplay(serverConfig.Panel, serverConfig.SimulationMode))

	if app.ApiParam.Enabled {
		app.apiDevice = device.NewApi(app.ServerConfig, app.displayDevice)
		app.apiEventChannel = app.apiDevice.EventChannel()
	}

	logrus.Debugln("Server created")

	return app
}

func newServerApp(serverConfig *config.ServerConfig, display *device.Display) *ServerApp {
	seed := serverConfig.Effects.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logrus.Debugf("Effect seed: %d", seed)

	app := &ServerApp{
		ServerConfig:      serverConfig,
		displayDevice:     display,
		rng:               rand.New(rand.NewSource(seed)),
		minDelay:          serverConfig.Effects.MinDelay(),
		maxDelay:          serverConfig.Effects.MaxDelay(),
		pause:             serverConfig.Effects.Pause(),
		effectLoopAskDone: make(chan bool),
		effectLoopDone:    make(chan bool),
	}

	app.effects = tv.NewSet(
		app.displayDevice,
		raster.NewPool(serverConfig.Effects.BufferBudget),
		app.rng,
		tv.Options{
			Width:         display.Width(),
			Height:        display.Height(),
			NoiseLines:    serverConfig.Effects.NoiseLines,
			FlickerLines:  serverConfig.Effects.FlickerLines,
			FlickerPeriod: serverConfig.Effects.FlickerPeriod,
			FlickerCycle:  serverConfig.Effects.FlickerCycle,
			Caption:       serverConfig.Effects.Caption,
		})

	return app
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting monoscope server ...")

	logrus.Printf("Starting devices ...")

	// Start display device
	if err := s.displayDevice.Start(); err != nil {
		logrus.Fatalf("Unable to start display: %v\n", err)
	}

	// Display baseline pattern
	s.stats.StartedAt = time.Now()
	s.applyEffect(tv.RedrawEffect)

	logrus.Infof("Monoscope pattern displayed, starting old TV simulation ...")

	// Start effect loop
	go s.effectLoop()

	// Start api device
	if s.apiDevice != nil {
		s.apiDevice.Start()
	}
}

func (s *ServerApp) Stop() {
	logrus.Printf("Stopping monoscope server ...")

	// Stop api
	if s.apiDevice != nil {
		s.apiDevice.StopSendingEvent()
	}

	// Stop effect loop
	logrus.Infof("Stop effect loop")
	s.effectLoopAskDone <- true
	<-s.effectLoopDone

	// Stop display device
	s.displayDevice.Stop()

	logrus.Printf("Server stopped")

	os.Exit(0)
}
