// Package edgefx provides a multi-channel Sobel edge-detection
// post-process for Go.
//
// # Overview
//
// edgefx takes the outputs of a prior rendering pass -- a shaded color
// image plus per-pixel depth and view-space normal buffers -- and
// composites a configurable edge color into the image wherever an edge
// is detected. Three independent Sobel detectors run per pixel:
//
//   - depth: gradient of linear view-space depth, with a steep-angle
//     adjustment that suppresses false edges on surfaces viewed at
//     grazing incidence
//   - normal: gradient of the decoded view-space normal
//   - color: gradient of the shaded color itself
//
// The per-detector edge strengths are max-combined and the result is
// used as the mix factor between the source color and the configured
// edge color.
//
// # Quick Start
//
//	import "github.com/gogpu/edgefx"
//
//	f := edgefx.NewFilter()
//	defer f.Close()
//
//	cfg := edgefx.DefaultConfig()
//	cfg.EdgeColor = edgefx.RGB(0, 0, 0)
//
//	out := edgefx.NewPixmap(w, h)
//	if err := f.Apply(out, frame, view, &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	out.SavePNG("edges.png")
//
// # Renderers
//
// The CPU path shades independent scanline bands on a worker pool and
// is the reference implementation. Importing the gpu subpackage
// registers a wgpu-based accelerator that runs the same kernel as a
// compute shader:
//
//	import _ "github.com/gogpu/edgefx/gpu" // enable GPU acceleration
//
// # Architecture
//
// The library is organized into:
//   - Public API: Config, ViewParams, FrameInputs, Filter, Pixmap
//   - Detectors: depth, normal, color Sobel kernels over a shared
//     sampling policy
//   - Internal: parallel (band scheduling), gpu (wgpu compute
//     pipeline), exrio (OpenEXR frame-buffer I/O)
//
// # Coordinate System
//
// Pixel coordinates follow standard image conventions: origin (0,0) at
// top-left, X right, Y down. Depth buffers hold nonlinear NDC depth as
// written by the rasterizer; view-space depth is negative in front of
// the camera (right-handed convention).
package edgefx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
