package systray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Tray state colors, matching the Kartoza palette used in the TUI.
var (
	colorWatching = color.RGBA{R: 0x7E, G: 0xBC, B: 0x6F, A: 0xFF} // green: armed
	colorLimiting = color.RGBA{R: 0xDF, G: 0x9A, B: 0x31, A: 0xFF} // orange: attenuating
	colorPaused   = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF} // gray: disabled
)

const iconSize = 64

// renderDot draws a filled circle on a transparent background and encodes
// it as PNG. The tray icons are generated at startup rather than shipped
// as assets.
func renderDot(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	center := float64(iconSize) / 2
	radius := float64(iconSize)/2 - 4

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist <= radius-1:
				img.SetRGBA(x, y, c)
			case dist <= radius:
				// Soften the rim so the dot does not look jagged at
				// small tray sizes.
				alpha := radius - dist
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(float64(c.R) * alpha),
					G: uint8(float64(c.G) * alpha),
					B: uint8(float64(c.B) * alpha),
					A: uint8(255 * alpha),
				})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
