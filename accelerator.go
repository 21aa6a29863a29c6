package edgefx

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this
// frame. The caller should transparently fall back to CPU shading.
var ErrFallbackToCPU = errors.New("edgefx: falling back to CPU shading")

// FrameAccelerator is an optional GPU acceleration provider.
//
// When registered via RegisterAccelerator, Filter.Apply offers each
// frame to the accelerator first. If the accelerator returns
// ErrFallbackToCPU or any error, shading transparently falls back to
// the CPU worker pool.
//
// Implementations are provided by GPU backend packages. Users opt in
// via blank import:
//
//	import _ "github.com/gogpu/edgefx/gpu" // enables GPU acceleration
type FrameAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu-compute").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// FilterFrame composites edges for a whole frame into dst.
	// All inputs are read-only for the duration of the call.
	// Returns ErrFallbackToCPU if the frame cannot be GPU-shaded.
	FilterFrame(dst *Pixmap, frame *FrameInputs, view *ViewParams, cfg *Config) error
}

// DeviceProviderAware is an optional interface for accelerators that
// can share GPU resources with an external provider (e.g., a gogpu
// window). When SetDeviceProvider is called, the accelerator reuses
// the provided GPU device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   FrameAccelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU
// shading.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration. If Init() fails, the accelerator is not registered and
// the error is returned.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    edgefx.RegisterAccelerator(NewWGPUAccelerator())
//	}
func RegisterAccelerator(a FrameAccelerator) error {
	if a == nil {
		return errors.New("edgefx: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered GPU accelerator, or nil
// if none.
func Accelerator() FrameAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the
// registered accelerator, enabling GPU device sharing. If no
// accelerator is registered or it doesn't support device sharing, this
// is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any
// methods that return wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
