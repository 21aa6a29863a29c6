package edgefx

import (
	"errors"
	"fmt"
)

// ErrMismatchedInputs is returned by Apply when the color, depth and
// normal buffers do not share one resolution.
var ErrMismatchedInputs = errors.New("edgefx: frame inputs differ in resolution")

// DepthBuffer holds nonlinear NDC depth, one float32 per pixel per
// sample. Sample-major layout: sample s of pixel (x, y) lives at
// data[s*width*height + y*width + x], matching the flat storage-buffer
// layout the GPU path binds.
type DepthBuffer struct {
	width   int
	height  int
	samples int
	data    []float32
}

// NewDepthBuffer creates a single-sampled depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return NewDepthBufferMS(width, height, 1)
}

// NewDepthBufferMS creates a depth buffer with the given sample count.
// A sample count below 1 is treated as 1.
func NewDepthBufferMS(width, height, samples int) *DepthBuffer {
	if samples < 1 {
		samples = 1
	}
	return &DepthBuffer{
		width:   width,
		height:  height,
		samples: samples,
		data:    make([]float32, width*height*samples),
	}
}

// Width returns the buffer width in pixels.
func (b *DepthBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *DepthBuffer) Height() int { return b.height }

// Samples returns the per-pixel sample count.
func (b *DepthBuffer) Samples() int { return b.samples }

// Data returns the raw sample-major depth data.
func (b *DepthBuffer) Data() []float32 { return b.data }

// Set stores a depth value for sample 0 of the given pixel.
func (b *DepthBuffer) Set(x, y int, depth float32) {
	b.SetSample(x, y, 0, depth)
}

// SetSample stores a depth value for one sample of the given pixel.
// Out-of-bounds coordinates are ignored.
func (b *DepthBuffer) SetSample(x, y, sample int, depth float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height ||
		sample < 0 || sample >= b.samples {
		return
	}
	b.data[sample*b.width*b.height+y*b.width+x] = depth
}

// Fetch returns the depth at one sample of the given pixel.
// Pixel coordinates clamp to the image bounds (edge-replicate); the
// sample index clamps to the sample count.
func (b *DepthBuffer) Fetch(x, y, sample int) float32 {
	x = clampInt(x, 0, b.width-1)
	y = clampInt(y, 0, b.height-1)
	sample = clampInt(sample, 0, b.samples-1)
	return b.data[sample*b.width*b.height+y*b.width+x]
}

// NormalBuffer holds packed view-space normals, three float32 in
// [0, 1] per pixel per sample, in the same sample-major layout as
// DepthBuffer.
type NormalBuffer struct {
	width   int
	height  int
	samples int
	data    []float32
}

// NewNormalBuffer creates a single-sampled normal buffer.
func NewNormalBuffer(width, height int) *NormalBuffer {
	return NewNormalBufferMS(width, height, 1)
}

// NewNormalBufferMS creates a normal buffer with the given sample count.
func NewNormalBufferMS(width, height, samples int) *NormalBuffer {
	if samples < 1 {
		samples = 1
	}
	return &NormalBuffer{
		width:   width,
		height:  height,
		samples: samples,
		data:    make([]float32, width*height*samples*3),
	}
}

// Width returns the buffer width in pixels.
func (b *NormalBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *NormalBuffer) Height() int { return b.height }

// Samples returns the per-pixel sample count.
func (b *NormalBuffer) Samples() int { return b.samples }

// Data returns the raw sample-major packed normal data.
func (b *NormalBuffer) Data() []float32 { return b.data }

// SetWorldNormal packs and stores a unit normal for sample 0.
// The vector is remapped from [-1, 1] to the [0, 1] texture encoding.
func (b *NormalBuffer) SetWorldNormal(x, y int, n Vec3) {
	b.SetPackedSample(x, y, 0,
		float32(n.X*0.5+0.5), float32(n.Y*0.5+0.5), float32(n.Z*0.5+0.5))
}

// SetPackedSample stores an already-packed [0, 1] normal for one
// sample of the given pixel. Out-of-bounds coordinates are ignored.
func (b *NormalBuffer) SetPackedSample(x, y, sample int, nx, ny, nz float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height ||
		sample < 0 || sample >= b.samples {
		return
	}
	i := (sample*b.width*b.height + y*b.width + x) * 3
	b.data[i+0] = nx
	b.data[i+1] = ny
	b.data[i+2] = nz
}

// FetchPacked returns the packed [0, 1] normal at one sample of the
// given pixel, with edge-replicate clamping.
func (b *NormalBuffer) FetchPacked(x, y, sample int) (float32, float32, float32) {
	x = clampInt(x, 0, b.width-1)
	y = clampInt(y, 0, b.height-1)
	sample = clampInt(sample, 0, b.samples-1)
	i := (sample*b.width*b.height + y*b.width + x) * 3
	return b.data[i+0], b.data[i+1], b.data[i+2]
}

// Fetch returns the decoded unit normal at one sample of the given
// pixel: normalize(packed*2 - 1). The decode normalizes, so it is
// invariant to uniform scaling of the packed encoding.
func (b *NormalBuffer) Fetch(x, y, sample int) Vec3 {
	nx, ny, nz := b.FetchPacked(x, y, sample)
	return decodeNormal(nx, ny, nz)
}

// decodeNormal unpacks a [0, 1]-encoded normal into a unit vector.
func decodeNormal(nx, ny, nz float32) Vec3 {
	return V3(
		float64(nx)*2-1,
		float64(ny)*2-1,
		float64(nz)*2-1,
	).Normalize()
}

// FrameInputs bundles the three input images of one frame. All three
// share one pixel-coordinate space and resolution; the depth and
// normal buffers may be multisampled. The buffers are read-only for
// the duration of Apply.
type FrameInputs struct {
	Color  *Pixmap
	Depth  *DepthBuffer
	Normal *NormalBuffer
}

// Validate checks that all present buffers share the color image's
// resolution. Depth and normal buffers are each optional; a detector
// whose input is missing is treated as disabled.
func (f *FrameInputs) Validate() error {
	if f.Color == nil {
		return errors.New("edgefx: frame has no color input")
	}
	w, h := f.Color.Width(), f.Color.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("edgefx: invalid color resolution %dx%d", w, h)
	}
	if f.Depth != nil && (f.Depth.Width() != w || f.Depth.Height() != h) {
		return fmt.Errorf("%w: depth %dx%d vs color %dx%d",
			ErrMismatchedInputs, f.Depth.Width(), f.Depth.Height(), w, h)
	}
	if f.Normal != nil && (f.Normal.Width() != w || f.Normal.Height() != h) {
		return fmt.Errorf("%w: normal %dx%d vs color %dx%d",
			ErrMismatchedInputs, f.Normal.Width(), f.Normal.Height(), w, h)
	}
	return nil
}
