package device

import (
	"image"
	"sync"

	"github.com/go-errors/errors"
	"github.com/jypelle/monoscope/internal/ili9341"
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/jypelle/monoscope/internal/srv/config"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Panel is the physical side of the display. x1 and y1 are exclusive.
type Panel interface {
	DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error
	Halt() error
}

// Display is the display handle shared by the effect loop. It keeps a mirror
// of the visible area for the simulation window and the api.
type Display struct {
	lock           sync.RWMutex
	panelParam     config.PanelParam
	simulationMode bool
	panel          Panel
	closers        []func() error
	mirror         *raster.Framebuffer
	blitCount      int64

	simulation simulationWindow
}

func NewDisplay(panelParam config.PanelParam, simulationMode bool) *Display {
	device := Display{
		panelParam:     panelParam,
		simulationMode: simulationMode,
		mirror:         raster.NewFramebuffer(panelParam.Width, panelParam.Height),
	}
	return &device
}

func (d *Display) Start() error {
	logrus.Infof("Start display device")

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.simulationMode {
		d.startSimulation()
		return nil
	}

	if _, err := host.Init(); err != nil {
		return errors.WrapPrefix(err, "unable to initialize host", 0)
	}

	var err error
	switch d.panelParam.Driver {
	case config.SSD1306_DRIVER:
		d.panel, err = d.openOled()
	default:
		d.panel, err = d.openTft()
	}
	return err
}

func (d *Display) openTft() (Panel, error) {
	// Open a handle to the SPI port:
	port, err := spireg.Open(d.panelParam.SpiPort)
	if err != nil {
		return nil, errors.WrapPrefix(err, "unable to open spi port", 0)
	}
	d.closers = append(d.closers, port.Close)

	dc := gpioreg.ByName(d.panelParam.DcPin)
	if dc == nil {
		return nil, errors.Errorf("unable to find dc pin %s", d.panelParam.DcPin)
	}
	var rst gpio.PinOut
	if d.panelParam.RstPin != "" {
		rst = gpioreg.ByName(d.panelParam.RstPin)
		if rst == nil {
			return nil, errors.Errorf("unable to find reset pin %s", d.panelParam.RstPin)
		}
	}

	tft, err := ili9341.NewSPI(port, dc, rst, &ili9341.Opts{
		W:       d.panelParam.Width,
		H:       d.panelParam.Height,
		MirrorX: d.panelParam.MirrorX,
		BGR:     d.panelParam.Bgr,
		Invert:  d.panelParam.Invert,
		Freq:    physic.Frequency(d.panelParam.FrequencyHz) * physic.Hertz,
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("Display %s ready", tft)
	return tft, nil
}

func (d *Display) openOled() (Panel, error) {
	// Open a handle to the I²C bus:
	bus, err := i2creg.Open(d.panelParam.I2cBus)
	if err != nil {
		return nil, errors.WrapPrefix(err, "unable to open i2c bus", 0)
	}
	d.closers = append(d.closers, bus.Close)

	oled, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: d.panelParam.Width, H: d.panelParam.Height})
	if err != nil {
		return nil, errors.WrapPrefix(err, "unable to initialize oled display", 0)
	}
	return &oledPanel{dev: oled, mirror: d.mirror}, nil
}

func (d *Display) Stop() {
	logrus.Infof("Stop display device")

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.simulationMode {
		d.closeSimulationWindow()
		return
	}

	if d.panel != nil {
		if err := d.panel.Halt(); err != nil {
			logrus.Errorf("Unable to halt display: %v", err)
		}
		d.panel = nil
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logrus.Errorf("Unable to close display bus: %v", err)
		}
	}
	d.closers = nil
}

// Width and Height of the visible area.
func (d *Display) Width() int  { return d.mirror.Width }
func (d *Display) Height() int { return d.mirror.Height }

// DrawBitmap sends a rectangle of pixels to the panel. The call blocks until
// the transfer is done.
func (d *Display) DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.mirror.Blit(x0, y0, x1, y1, pix)
	d.blitCount++

	if d.simulationMode {
		d.invalidateSimulationWindow()
		return nil
	}
	if d.panel == nil {
		return errors.New("display not started")
	}
	if err := d.panel.DrawBitmap(x0, y0, x1, y1, pix); err != nil {
		return errors.WrapPrefix(err, "unable to draw bitmap", 0)
	}
	return nil
}

// Snapshot returns a copy of what the panel currently shows.
func (d *Display) Snapshot() image.Image {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.mirror.Clone()
}

// BlitCount returns the number of transfers sent since start.
func (d *Display) BlitCount() int64 {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.blitCount
}

// oledPanel redraws the whole mirror on each transfer, the ssd1306 driver
// takes care of the monochrome conversion.
type oledPanel struct {
	dev    *ssd1306.Dev
	mirror *raster.Framebuffer
}

func (p *oledPanel) DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error {
	return p.dev.Draw(p.dev.Bounds(), p.mirror, image.Point{})
}

func (p *oledPanel) Halt() error {
	return p.dev.Halt()
}
