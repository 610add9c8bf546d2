package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// quietZoneModules is the white margin drawn around the symbol.
	quietZoneModules = 2
	// moduleSizePx is the edge length of one module in the source raster
	// before resampling.
	moduleSizePx = 10
)

// Generator produces scannable QR code images.
type Generator struct{}

// NewGenerator creates a new QR code generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate encodes payload as a QR code with Low error correction and
// returns a PNG exactly sizePx wide and tall. The symbol is drawn at its
// natural module grid with a two-module quiet zone and then resampled with
// a Lanczos filter, so output size is independent of payload length.
// Identical payload and size yield byte-identical output.
func (g *Generator) Generate(payload string, sizePx int) ([]byte, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid qr size %d", sizePx)
	}

	code, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	code.DisableBorder = true
	grid := code.Bitmap()

	src := rasterize(grid)
	resized := imaging.Resize(src, sizePx, sizePx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return buf.Bytes(), nil
}

// rasterize draws the module grid as black-on-white with the quiet zone
// added around it.
func rasterize(grid [][]bool) image.Image {
	modules := len(grid)
	edge := (modules + 2*quietZoneModules) * moduleSizePx

	img := imaging.New(edge, edge, color.White)
	for y, row := range grid {
		for x, set := range row {
			if !set {
				continue
			}
			x0 := (x + quietZoneModules) * moduleSizePx
			y0 := (y + quietZoneModules) * moduleSizePx
			for py := y0; py < y0+moduleSizePx; py++ {
				for px := x0; px < x0+moduleSizePx; px++ {
					img.Set(px, py, color.Black)
				}
			}
		}
	}
	return img
}
