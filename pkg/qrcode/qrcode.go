// Package qr renders QR codes with rounded modules and an optional logo in the centre.
package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type Config struct {
	Size          int
	QuietZone     int     // modules of empty border
	LogoScale     float64 // share of Size covered by the logo
	CornerRadius  float64 // module roundness, 0..0.5
	RecoveryLevel qrcode.RecoveryLevel
	Background    color.Color
	Foreground    color.Color
	LogoPath      string
}

// Default is the look used for event share codes.
var Default = Config{
	Size:          512,
	QuietZone:     2,
	LogoScale:     0.22,
	CornerRadius:  0.35,
	RecoveryLevel: qrcode.Highest,
	Background:    color.RGBA{R: 255, G: 253, B: 245, A: 255},
	Foreground:    color.RGBA{R: 33, G: 37, B: 41, A: 255},
}

// WithLogo returns a copy of c that draws the image at path in the centre.
func (c Config) WithLogo(path string) Config {
	c.LogoPath = path
	return c
}

// Generate encodes content and returns the PNG image.
func (c Config) Generate(content string) ([]byte, error) {
	if c.Size <= 0 {
		return nil, errors.New("qr: size must be positive")
	}

	code, err := qrcode.New(content, c.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	modules := len(bitmap) + 2*c.QuietZone
	cell := float64(c.Size) / float64(modules)
	offset := float64(c.QuietZone) * cell

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()

	var logo image.Image
	logoSide := 0.0
	if c.LogoPath != "" {
		logo, err = gg.LoadImage(c.LogoPath)
		if err != nil {
			return nil, err
		}
		logoSide = float64(c.Size) * c.LogoScale
	}
	center := float64(c.Size) / 2
	clearRadius := logoSide/2 + cell

	dc.SetColor(c.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := offset + float64(x)*cell
			py := offset + float64(y)*cell
			if logo != nil && insideCircle(px+cell/2, py+cell/2, center, clearRadius) {
				continue
			}
			dc.DrawRoundedRectangle(px, py, cell, cell, cell*c.CornerRadius)
		}
	}
	dc.Fill()

	if logo != nil {
		dc.SetColor(c.Background)
		dc.DrawCircle(center, center, clearRadius)
		dc.Fill()

		scaled := resize.Resize(uint(logoSide), uint(logoSide), logo, resize.Lanczos3)
		dc.DrawImageAnchored(scaled, int(center), int(center), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func insideCircle(x, y, center, radius float64) bool {
	dx, dy := x-center, y-center
	return dx*dx+dy*dy <= radius*radius
}
