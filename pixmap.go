package edgefx

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular pixel buffer of linear RGBA values
// in [0, 1], 4 float32 components per pixel. It is used both as the
// shaded color input and as the composited output.
type Pixmap struct {
	width  int
	height int
	data   []float32 // RGBA, 4 components per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA, 4 float32 per pixel).
func (p *Pixmap) Data() []float32 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = float32(c.R)
	p.data[i+1] = float32(c.G)
	p.data[i+2] = float32(c.B)
	p.data[i+3] = float32(c.A)
}

// GetPixel returns the color of a single pixel. Out-of-bounds
// coordinates clamp to the nearest edge pixel (edge-replicate), since
// the Sobel stencil reads one thickness outside the image.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	x = clampInt(x, 0, p.width-1)
	y = clampInt(y, 0, p.height-1)
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]),
		G: float64(p.data[i+1]),
		B: float64(p.data[i+2]),
		A: float64(p.data[i+3]),
	}
}

// rgb32 returns the RGB components of a pixel as float32, with
// edge-replicate clamping. This is the detectors' fetch path.
func (p *Pixmap) rgb32(x, y int) (float32, float32, float32) {
	x = clampInt(x, 0, p.width-1)
	y = clampInt(y, 0, p.height-1)
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage converts the pixmap to an image.RGBA, clamping each
// component to [0, 255].
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < p.width*p.height; i++ {
		img.Pix[i*4+0] = uint8(clamp255(float64(p.data[i*4+0]) * 255))
		img.Pix[i*4+1] = uint8(clamp255(float64(p.data[i*4+1]) * 255))
		img.Pix[i*4+2] = uint8(clamp255(float64(p.data[i*4+2]) * 255))
		img.Pix[i*4+3] = uint8(clamp255(float64(p.data[i*4+3]) * 255))
	}
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// clampInt clamps v to the [lo, hi] range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
