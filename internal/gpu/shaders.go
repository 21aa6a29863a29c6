//go:build !nogpu

// Package gpu implements the wgpu compute backend for edge detection.
package gpu

import (
	_ "embed"
)

// Embedded WGSL shader sources, compiled to SPIR-V through naga at
// pipeline creation time.

//go:embed shaders/edge_detect.wgsl
var edgeShaderSource string

// EdgeShaderSource returns the WGSL source of the edge-detection
// compute shader.
func EdgeShaderSource() string {
	return edgeShaderSource
}

// EdgeParams is the uniform block of the edge-detection shader.
// Must match the Params struct in edge_detect.wgsl, including the
// 16-byte alignment of every vec4 and mat4x4 member.
type EdgeParams struct {
	// Width, Height, Samples, SampleIndex.
	Dims [4]uint32

	// DepthThreshold, NormalThreshold, ColorThreshold, DepthThickness.
	Thresholds [4]float32

	// NormalThickness, ColorThickness, SteepAngleThreshold,
	// SteepAngleMultiplier.
	Shaping [4]float32

	// Edge color RGB; W carries the near plane for diagnostics.
	EdgeColor [4]float32

	// Flags, ProjKind, two padding words.
	Flags [4]uint32

	// Column-major inverse matrices, matching mat4x4<f32> layout.
	InvProj     [16]float32
	InvViewProj [16]float32

	CameraPos [4]float32
}

// Flag bits of EdgeParams.Flags[0].
const (
	FlagUVMode    uint32 = 1 << 0
	FlagHasDepth  uint32 = 1 << 1
	FlagHasNormal uint32 = 1 << 2
)

// Projection kinds of EdgeParams.Flags[1].
const (
	ProjPerspective  uint32 = 0
	ProjOrthographic uint32 = 1
	ProjCustom       uint32 = 2
)
