package edgefx

import (
	"errors"
	"testing"
)

func TestDepthBufferSampleMajorLayout(t *testing.T) {
	b := NewDepthBufferMS(4, 3, 2)
	b.SetSample(1, 2, 0, 0.25)
	b.SetSample(1, 2, 1, 0.75)

	// Sample s of pixel (x, y) lives at data[s*w*h + y*w + x].
	if got := b.Data()[0*12+2*4+1]; got != 0.25 {
		t.Errorf("sample 0 stored at %v, want 0.25", got)
	}
	if got := b.Data()[1*12+2*4+1]; got != 0.75 {
		t.Errorf("sample 1 stored at %v, want 0.75", got)
	}
}

func TestDepthBufferFetchClamping(t *testing.T) {
	b := NewDepthBuffer(2, 2)
	b.Set(0, 0, 1)
	b.Set(1, 0, 2)
	b.Set(0, 1, 3)
	b.Set(1, 1, 4)

	tests := []struct {
		x, y int
		want float32
	}{
		{-1, -1, 1},
		{5, 0, 2},
		{-3, 1, 3},
		{2, 2, 4},
	}
	for _, tt := range tests {
		if got := b.Fetch(tt.x, tt.y, 0); got != tt.want {
			t.Errorf("Fetch(%d, %d) = %v, want %v (edge-replicate)",
				tt.x, tt.y, got, tt.want)
		}
	}

	// Out-of-range sample indices clamp to the sample count.
	if got := b.Fetch(0, 0, 7); got != 1 {
		t.Errorf("Fetch with sample 7 = %v, want sample 0 value", got)
	}
}

func TestDepthBufferOutOfBoundsSetIgnored(t *testing.T) {
	b := NewDepthBuffer(2, 2)
	b.Set(-1, 0, 9)
	b.Set(2, 0, 9)
	b.SetSample(0, 0, 3, 9)

	for i, v := range b.Data() {
		if v != 0 {
			t.Fatalf("data[%d] = %v after out-of-bounds writes", i, v)
		}
	}
}

func TestNormalBufferPackRoundTrip(t *testing.T) {
	b := NewNormalBuffer(2, 2)
	n := V3(0, 0, 1)
	b.SetWorldNormal(1, 1, n)

	nx, ny, nz := b.FetchPacked(1, 1, 0)
	if nx != 0.5 || ny != 0.5 || nz != 1 {
		t.Errorf("packed = (%v, %v, %v), want (0.5, 0.5, 1)", nx, ny, nz)
	}
	if got := b.Fetch(1, 1, 0); !got.Approx(n, 1e-6) {
		t.Errorf("Fetch = %+v, want %+v", got, n)
	}
}

func TestDecodeNormalScaleInvariant(t *testing.T) {
	// The decode normalizes, so a half-length encoding of the same
	// direction decodes to the same unit vector.
	full := decodeNormal(1, 0.5, 0.5)    // encodes (1, 0, 0)
	half := decodeNormal(0.75, 0.5, 0.5) // encodes (0.5, 0, 0)

	if !full.Approx(V3(1, 0, 0), 1e-9) {
		t.Errorf("decodeNormal full = %+v, want x axis", full)
	}
	if !full.Approx(half, 1e-9) {
		t.Errorf("scaled encodings decode differently: %+v vs %+v", full, half)
	}
}

func TestFrameInputsValidate(t *testing.T) {
	color := NewPixmap(4, 4)

	tests := []struct {
		name    string
		frame   FrameInputs
		wantErr bool
	}{
		{"color only", FrameInputs{Color: color}, false},
		{"all matching", FrameInputs{
			Color:  color,
			Depth:  NewDepthBuffer(4, 4),
			Normal: NewNormalBuffer(4, 4),
		}, false},
		{"multisampled matching", FrameInputs{
			Color: color,
			Depth: NewDepthBufferMS(4, 4, 4),
		}, false},
		{"no color", FrameInputs{Depth: NewDepthBuffer(4, 4)}, true},
		{"empty color", FrameInputs{Color: NewPixmap(0, 0)}, true},
		{"depth mismatch", FrameInputs{
			Color: color,
			Depth: NewDepthBuffer(4, 5),
		}, true},
		{"normal mismatch", FrameInputs{
			Color:  color,
			Normal: NewNormalBuffer(3, 4),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrameInputsValidateMismatchSentinel(t *testing.T) {
	frame := FrameInputs{
		Color: NewPixmap(4, 4),
		Depth: NewDepthBuffer(2, 2),
	}
	if err := frame.Validate(); !errors.Is(err, ErrMismatchedInputs) {
		t.Errorf("error = %v, want ErrMismatchedInputs", err)
	}
}
