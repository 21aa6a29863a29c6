//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/edgefx"
)

func testFrame(depthSamples, normalSamples int) *edgefx.FrameInputs {
	const w, h = 4, 4
	frame := &edgefx.FrameInputs{Color: edgefx.NewPixmap(w, h)}
	if depthSamples > 0 {
		frame.Depth = edgefx.NewDepthBufferMS(w, h, depthSamples)
	}
	if normalSamples > 0 {
		frame.Normal = edgefx.NewNormalBufferMS(w, h, normalSamples)
	}
	return frame
}

func testView(t *testing.T, kind edgefx.ProjectionKind) *edgefx.ViewParams {
	t.Helper()
	var proj edgefx.Mat4
	switch kind {
	case edgefx.ProjectionOrthographic:
		proj = edgefx.Orthographic(-1, 1, -1, 1, 0.1, 100)
	case edgefx.ProjectionCustom:
		proj = edgefx.Identity()
	default:
		proj = edgefx.PerspectiveReverseZ(math.Pi/3, 1, 0.25)
	}
	view, ok := edgefx.NewViewParams(kind, proj, edgefx.Identity(), edgefx.V3(0, 0, 0))
	if !ok {
		t.Fatalf("NewViewParams(%v) failed", kind)
	}
	return &view
}

func TestEdgeParamsMatchesUniformSize(t *testing.T) {
	if got := unsafe.Sizeof(EdgeParams{}); got != edgeParamsSize {
		t.Fatalf("sizeof(EdgeParams) = %d, want %d", got, edgeParamsSize)
	}
	if edgeParamsSize%16 != 0 {
		t.Fatalf("uniform size %d is not 16-byte aligned", edgeParamsSize)
	}
}

func TestEdgeShaderSource(t *testing.T) {
	src := EdgeShaderSource()
	if src == "" {
		t.Fatal("embedded shader source is empty")
	}
	for _, want := range []string{"@compute", "cs_edge", "struct Params"} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestBuildParamsFlags(t *testing.T) {
	cfg := edgefx.DefaultConfig()
	view := testView(t, edgefx.ProjectionPerspective)

	tests := []struct {
		name  string
		frame *edgefx.FrameInputs
		uv    bool
		want  uint32
	}{
		{"color only", testFrame(0, 0), false, 0},
		{"depth", testFrame(1, 0), false, FlagHasDepth},
		{"depth and normal", testFrame(1, 1), false, FlagHasDepth | FlagHasNormal},
		{"uv mode", testFrame(1, 1), true, FlagUVMode | FlagHasDepth | FlagHasNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.UVThickness = tt.uv
			p := BuildParams(tt.frame, view, &c)
			if p.Flags[0] != tt.want {
				t.Errorf("flags = %#x, want %#x", p.Flags[0], tt.want)
			}
		})
	}
}

func TestBuildParamsClampsSampleIndex(t *testing.T) {
	view := testView(t, edgefx.ProjectionPerspective)
	frame := testFrame(4, 0)

	tests := []struct {
		index int
		want  uint32
	}{
		{-3, 0},
		{0, 0},
		{2, 2},
		{9, 3},
	}
	for _, tt := range tests {
		cfg := edgefx.DefaultConfig()
		cfg.SampleIndex = tt.index
		p := BuildParams(frame, view, &cfg)
		if p.Dims[2] != 4 {
			t.Fatalf("sample count = %d, want 4", p.Dims[2])
		}
		if p.Dims[3] != tt.want {
			t.Errorf("SampleIndex %d: clamped to %d, want %d", tt.index, p.Dims[3], tt.want)
		}
	}
}

func TestBuildParamsProjectionKind(t *testing.T) {
	cfg := edgefx.DefaultConfig()
	frame := testFrame(1, 0)

	tests := []struct {
		kind edgefx.ProjectionKind
		want uint32
	}{
		{edgefx.ProjectionPerspective, ProjPerspective},
		{edgefx.ProjectionOrthographic, ProjOrthographic},
		{edgefx.ProjectionCustom, ProjCustom},
	}
	for _, tt := range tests {
		p := BuildParams(frame, testView(t, tt.kind), &cfg)
		if p.Flags[1] != tt.want {
			t.Errorf("kind %v: projection word = %d, want %d", tt.kind, p.Flags[1], tt.want)
		}
	}
}

func TestBuildParamsCarriesViewState(t *testing.T) {
	cfg := edgefx.DefaultConfig()
	cfg.DepthThreshold = 2.5
	cfg.EdgeColor = edgefx.RGB(1, 0.5, 0.25)
	frame := testFrame(1, 1)

	proj := edgefx.PerspectiveReverseZ(math.Pi/3, 1, 0.25)
	view, ok := edgefx.NewViewParams(edgefx.ProjectionPerspective, proj, edgefx.Identity(), edgefx.V3(3, -2, 7))
	if !ok {
		t.Fatal("NewViewParams failed")
	}

	p := BuildParams(frame, &view, &cfg)
	if p.Thresholds[0] != 2.5 {
		t.Errorf("depth threshold = %v, want 2.5", p.Thresholds[0])
	}
	if p.EdgeColor != [4]float32{1, 0.5, 0.25, 0.25} {
		t.Errorf("edge color block = %v, want [1 0.5 0.25 0.25]", p.EdgeColor)
	}
	if p.CameraPos != [4]float32{3, -2, 7, 1} {
		t.Errorf("camera position = %v", p.CameraPos)
	}
	for i := 0; i < 16; i++ {
		if p.InvProj[i] != float32(view.InvProjection[i]) {
			t.Fatalf("InvProj[%d] = %v, want %v", i, p.InvProj[i], view.InvProjection[i])
		}
		if p.InvViewProj[i] != float32(view.InvViewProj[i]) {
			t.Fatalf("InvViewProj[%d] = %v, want %v", i, p.InvViewProj[i], view.InvViewProj[i])
		}
	}
}

func TestParamsToBytesLayout(t *testing.T) {
	p := EdgeParams{
		Dims:       [4]uint32{1920, 1080, 4, 2},
		Thresholds: [4]float32{1.5, 0.8, 0.25, 2},
		Flags:      [4]uint32{FlagHasDepth, ProjOrthographic, 0, 0},
		CameraPos:  [4]float32{1, 2, 3, 1},
	}
	p.InvProj[0] = -0.5
	p.InvViewProj[15] = 4

	buf := ParamsToBytes(&p)
	if len(buf) != edgeParamsSize {
		t.Fatalf("serialized size = %d, want %d", len(buf), edgeParamsSize)
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }
	f32 := func(off int) float32 { return math.Float32frombits(u32(off)) }

	if got := u32(0); got != 1920 {
		t.Errorf("width word = %d, want 1920", got)
	}
	if got := u32(12); got != 2 {
		t.Errorf("sample index word = %d, want 2", got)
	}
	if got := f32(16); got != 1.5 {
		t.Errorf("depth threshold = %v, want 1.5", got)
	}
	if got := u32(64); got != FlagHasDepth {
		t.Errorf("flags word = %#x, want %#x", got, FlagHasDepth)
	}
	if got := f32(80); got != -0.5 {
		t.Errorf("InvProj[0] = %v, want -0.5", got)
	}
	if got := f32(144 + 15*4); got != 4 {
		t.Errorf("InvViewProj[15] = %v, want 4", got)
	}
	if got := f32(edgeParamsSize - 16); got != 1 {
		t.Errorf("CameraPos.x = %v, want 1", got)
	}
}
