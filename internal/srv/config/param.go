package config

import (
	_ "embed"
	"time"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

const (
	ILI9341_DRIVER = "ili9341"
	SSD1306_DRIVER = "ssd1306"
)

type ServerParam struct {
	Panel    PanelParam   `yaml:"panel"`
	Effects  EffectsParam `yaml:"effects"`
	ApiParam ApiParam     `yaml:"api"`
}

// PanelParam holds the board wiring of the display.
type PanelParam struct {
	Driver      string `yaml:"driver"`
	SpiPort     string `yaml:"spi_port"`
	I2cBus      string `yaml:"i2c_bus"`
	DcPin       string `yaml:"dc_pin"`
	RstPin      string `yaml:"rst_pin"`
	FrequencyHz int64  `yaml:"frequency_hz"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	MirrorX     bool   `yaml:"mirror_x"`
	Bgr         bool   `yaml:"bgr"`
	Invert      bool   `yaml:"invert"`
}

type EffectsParam struct {
	Seed          int64  `yaml:"seed"`
	MinDelayMs    int64  `yaml:"min_delay_ms"`
	MaxDelayMs    int64  `yaml:"max_delay_ms"`
	PauseMs       int64  `yaml:"pause_ms"`
	NoiseLines    int    `yaml:"noise_lines"`
	FlickerLines  int    `yaml:"flicker_lines"`
	FlickerPeriod int    `yaml:"flicker_period"`
	FlickerCycle  int    `yaml:"flicker_cycle"`
	Caption       string `yaml:"caption"`
	BufferBudget  int    `yaml:"buffer_budget"`
}

func (e EffectsParam) MinDelay() time.Duration {
	return time.Duration(e.MinDelayMs) * time.Millisecond
}

func (e EffectsParam) MaxDelay() time.Duration {
	return time.Duration(e.MaxDelayMs) * time.Millisecond
}

func (e EffectsParam) Pause() time.Duration {
	return time.Duration(e.PauseMs) * time.Millisecond
}

type ApiParam struct {
	Enabled bool   `yaml:"enabled"`
	SslPort int64  `yaml:"ssl_port"`
	ApiKey  string `yaml:"api_key"`
}
