// Package exrio reads and writes frame inputs as OpenEXR files.
//
// Color images round-trip through the RGBA channels, depth uses the
// conventional "Z" channel and packed normals use R, G, B at full
// float precision. EXR has no notion of per-pixel samples, so
// multisampled buffers save sample 0 only.
package exrio

import (
	"fmt"
	"image"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/mrjoshuak/go-openexr/exrutil"

	"github.com/gogpu/edgefx"
)

// depthChannel is the canonical EXR name for a depth pass.
const depthChannel = "Z"

// LoadColor reads an EXR color image into a pixmap.
func LoadColor(path string) (*edgefx.Pixmap, error) {
	img, err := exr.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("exrio: read color %s: %w", path, err)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pm := edgefx.NewPixmap(w, h)
	copy(pm.Data(), img.Pix)
	return pm, nil
}

// SaveColor writes a pixmap as an EXR color image.
func SaveColor(path string, pm *edgefx.Pixmap) error {
	img := exr.NewRGBAImage(image.Rect(0, 0, pm.Width(), pm.Height()))
	copy(img.Pix, pm.Data())
	if err := exr.EncodeFile(path, img); err != nil {
		return fmt.Errorf("exrio: write color %s: %w", path, err)
	}
	return nil
}

// LoadDepth reads the Z channel of an EXR file into a single-sampled
// depth buffer.
func LoadDepth(path string) (*edgefx.DepthBuffer, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("exrio: open depth %s: %w", path, err)
	}
	defer f.Close()

	hdr := f.Header(0)
	data, err := exrutil.ExtractChannel(f, depthChannel)
	if err != nil {
		return nil, fmt.Errorf("exrio: read depth %s: %w", path, err)
	}

	buf := edgefx.NewDepthBuffer(hdr.Width(), hdr.Height())
	copy(buf.Data(), data)
	return buf, nil
}

// SaveDepth writes sample 0 of a depth buffer as the Z channel of an
// EXR file at full float precision.
func SaveDepth(path string, buf *edgefx.DepthBuffer) error {
	w, h := buf.Width(), buf.Height()

	fb := exr.NewFrameBuffer()
	fb.Set(depthChannel, exr.NewSliceFromFloat32(buf.Data()[:w*h], w, h))

	channels := exr.NewChannelList()
	channels.Add(exr.Channel{
		Name: depthChannel, Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1,
	})
	if err := writeScanlines(path, w, h, channels, fb); err != nil {
		return fmt.Errorf("exrio: write depth %s: %w", path, err)
	}
	return nil
}

// LoadNormals reads packed normals from the R, G, B channels of an EXR
// file into a single-sampled normal buffer.
func LoadNormals(path string) (*edgefx.NormalBuffer, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("exrio: open normals %s: %w", path, err)
	}
	defer f.Close()

	hdr := f.Header(0)
	planes, err := exrutil.ExtractChannels(f, "R", "G", "B")
	if err != nil {
		return nil, fmt.Errorf("exrio: read normals %s: %w", path, err)
	}

	w, h := hdr.Width(), hdr.Height()
	buf := edgefx.NewNormalBuffer(w, h)
	r, g, b := planes["R"], planes["G"], planes["B"]
	data := buf.Data()
	for i := 0; i < w*h; i++ {
		data[i*3+0] = r[i]
		data[i*3+1] = g[i]
		data[i*3+2] = b[i]
	}
	return buf, nil
}

// SaveNormals writes sample 0 of a packed normal buffer to the R, G, B
// channels of an EXR file at full float precision.
func SaveNormals(path string, buf *edgefx.NormalBuffer) error {
	w, h := buf.Width(), buf.Height()
	data := buf.Data()

	planes := [3][]float32{
		make([]float32, w*h),
		make([]float32, w*h),
		make([]float32, w*h),
	}
	for i := 0; i < w*h; i++ {
		planes[0][i] = data[i*3+0]
		planes[1][i] = data[i*3+1]
		planes[2][i] = data[i*3+2]
	}

	fb := exr.NewFrameBuffer()
	channels := exr.NewChannelList()
	for c, name := range []string{"R", "G", "B"} {
		fb.Set(name, exr.NewSliceFromFloat32(planes[c], w, h))
		channels.Add(exr.Channel{
			Name: name, Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1,
		})
	}
	if err := writeScanlines(path, w, h, channels, fb); err != nil {
		return fmt.Errorf("exrio: write normals %s: %w", path, err)
	}
	return nil
}

// writeScanlines writes a frame buffer through the low-level scanline
// API, which honors per-channel pixel types unlike the RGBA encoder.
func writeScanlines(path string, w, h int, channels *exr.ChannelList, fb *exr.FrameBuffer) error {
	hdr := exr.NewScanlineHeader(w, h)
	hdr.SetCompression(exr.CompressionZIP)
	hdr.SetChannels(channels)

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}

	writer, err := exr.NewScanlineWriter(f, hdr)
	if err != nil {
		_ = f.Close()
		return err
	}
	writer.SetFrameBuffer(fb)
	if err := writer.WritePixels(0, h-1); err != nil {
		_ = f.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
