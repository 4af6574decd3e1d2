package ili9341

import (
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/jypelle/monoscope/internal/raster"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	swReset       = 0x01
	sleepIn       = 0x10
	sleepOut      = 0x11
	normalOn      = 0x13
	inverseOff    = 0x20
	inverseOn     = 0x21
	displayOff    = 0x28
	displayOn     = 0x29
	columnAddress = 0x2A
	pageAddress   = 0x2B
	memoryWrite   = 0x2C
	memoryAccess  = 0x36
	pixelFormat   = 0x3A
	frameControl1 = 0xB1
	funcControl   = 0xB6
	powerControl1 = 0xC0
	powerControl2 = 0xC1
	vcomControl1  = 0xC5
	vcomControl2  = 0xC7

	// memoryAccess flags
	madctlMY  = 0x80
	madctlMX  = 0x40
	madctlMV  = 0x20
	madctlBGR = 0x08

	pixelFormat16 = 0x55
)

// Opts describes the panel geometry and orientation.
type Opts struct {
	W int
	H int

	MirrorX bool
	MirrorY bool
	BGR     bool
	Invert  bool

	Freq physic.Frequency
}

// DefaultOpts is a 320x240 landscape panel.
var DefaultOpts = Opts{
	W:       320,
	H:       240,
	MirrorX: true,
	BGR:     true,
	Freq:    10 * physic.MegaHertz,
}

type command struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// Dev is a handle to an ILI9341.
type Dev struct {
	c conn.Conn
	// dc is low when sending a command, high when sending data.
	dc gpio.PinOut
	// rst is active low, may be nil.
	rst       gpio.PinOut
	maxTxSize int
	opts      Opts
	buf       []byte
}

// NewSPI opens a handle to an ILI9341 on the SPI port, resets it and runs
// the initialization sequence.
func NewSPI(p spi.Port, dc gpio.PinOut, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("ili9341: dc pin is required")
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.W <= 0 || o.H <= 0 {
		return nil, errors.Errorf("ili9341: invalid size %dx%d", o.W, o.H)
	}
	if o.Freq == 0 {
		o.Freq = DefaultOpts.Freq
	}

	c, err := p.Connect(o.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, errors.WrapPrefix(err, "ili9341: could not connect to device", 0)
	}

	// Use the connection limits when known, otherwise 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}

	d := &Dev{
		c:         c,
		dc:        dc,
		rst:       rst,
		maxTxSize: maxTxSize,
		opts:      o,
	}

	if err := d.reset(); err != nil {
		return nil, err
	}
	for _, cmd := range d.initSequence() {
		if err := d.send(cmd); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ili9341{%s, %dx%d}", d.c, d.opts.W, d.opts.H)
}

// Bounds returns the drawable area.
func (d *Dev) Bounds() (int, int) {
	return d.opts.W, d.opts.H
}

// MemoryAccess returns the memory access control register value used for
// the configured orientation.
func (o *Opts) MemoryAccess() byte {
	var v byte
	if o.W > o.H {
		v |= madctlMV
	}
	if o.MirrorX {
		v |= madctlMX
	}
	if o.MirrorY {
		v |= madctlMY
	}
	if o.BGR {
		v |= madctlBGR
	}
	return v
}

func (d *Dev) initSequence() []command {
	inversion := byte(inverseOff)
	if d.opts.Invert {
		inversion = inverseOn
	}
	return []command{
		{cmd: swReset, delay: 150 * time.Millisecond},
		{cmd: powerControl1, data: []byte{0x23}},
		{cmd: powerControl2, data: []byte{0x10}},
		{cmd: vcomControl1, data: []byte{0x3E, 0x28}},
		{cmd: vcomControl2, data: []byte{0x86}},
		{cmd: memoryAccess, data: []byte{d.opts.MemoryAccess()}},
		{cmd: pixelFormat, data: []byte{pixelFormat16}},
		{cmd: frameControl1, data: []byte{0x00, 0x18}},
		{cmd: funcControl, data: []byte{0x08, 0x82, 0x27}},
		{cmd: inversion},
		{cmd: sleepOut, delay: 120 * time.Millisecond},
		{cmd: normalOn},
		{cmd: displayOn, delay: 20 * time.Millisecond},
	}
}

// DrawBitmap writes pix, a (x1-x0)×(y1-y0) row-major rectangle, at (x0, y0).
// x1 and y1 are exclusive.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error {
	if x0 < 0 || y0 < 0 || x1 > d.opts.W || y1 > d.opts.H || x0 >= x1 || y0 >= y1 {
		return errors.Errorf("ili9341: rectangle (%d,%d)-(%d,%d) out of %dx%d", x0, y0, x1, y1, d.opts.W, d.opts.H)
	}
	n := (x1 - x0) * (y1 - y0)
	if len(pix) < n {
		return errors.Errorf("ili9341: %d pixels given, %d required", len(pix), n)
	}

	if err := d.setWindow(x0, y0, x1-1, y1-1); err != nil {
		return err
	}

	if cap(d.buf) < n*2 {
		d.buf = make([]byte, n*2)
	}
	buf := d.buf[:n*2]
	for i, c := range pix[:n] {
		buf[2*i] = byte(c >> 8)
		buf[2*i+1] = byte(c)
	}
	return d.sendData(buf)
}

// Halt turns the display off and puts the controller to sleep.
func (d *Dev) Halt() error {
	if err := d.send(command{cmd: displayOff}); err != nil {
		return err
	}
	return d.send(command{cmd: sleepIn, delay: 5 * time.Millisecond})
}

func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
	column := command{
		cmd:  columnAddress,
		data: []byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)},
	}
	if err := d.send(column); err != nil {
		return err
	}
	page := command{
		cmd:  pageAddress,
		data: []byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)},
	}
	if err := d.send(page); err != nil {
		return err
	}
	return d.sendCommand(memoryWrite)
}

func (d *Dev) send(c command) error {
	if err := d.sendCommand(c.cmd); err != nil {
		return err
	}
	if len(c.data) != 0 {
		if err := d.sendData(c.data); err != nil {
			return err
		}
	}
	if c.delay != 0 {
		time.Sleep(c.delay)
	}
	return nil
}

func (d *Dev) sendCommand(c byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return errors.WrapPrefix(err, "ili9341: dc pin", 0)
	}
	if err := d.c.Tx([]byte{c}, nil); err != nil {
		return errors.WrapPrefix(err, fmt.Sprintf("ili9341: command 0x%02X", c), 0)
	}
	return nil
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return errors.WrapPrefix(err, "ili9341: dc pin", 0)
	}
	for len(data) != 0 {
		chunk := data
		if len(chunk) > d.maxTxSize {
			chunk = data[:d.maxTxSize]
		}
		data = data[len(chunk):]
		if err := d.c.Tx(chunk, nil); err != nil {
			return errors.WrapPrefix(err, "ili9341: data transfer", 0)
		}
	}
	return nil
}

func (d *Dev) reset() error {
	if d.rst == nil || d.rst == gpio.INVALID {
		return nil
	}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return errors.WrapPrefix(err, "ili9341: reset pin", 0)
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}
