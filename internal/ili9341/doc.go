// Package ili9341 drives an ILI9341 TFT controller over SPI with a 4-wire
// interface (data/command pin) in 16 bit RGB565 mode.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
package ili9341
