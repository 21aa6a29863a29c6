//go:build !nogpu

// Package gpu registers the GPU accelerator for hardware-accelerated
// frame shading.
//
// Import this package to offer each frame to the wgpu compute pipeline
// before the CPU worker pool. The accelerator initializes its device
// lazily; if no Vulkan/Metal/DX12 device is available, every frame
// transparently falls back to CPU shading.
//
// Usage:
//
//	import _ "github.com/gogpu/edgefx/gpu" // enable GPU acceleration
package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/edgefx"
	gpuimpl "github.com/gogpu/edgefx/internal/gpu"
)

// ErrNilProvider is returned by SetDeviceProvider for a nil provider.
var ErrNilProvider = errors.New("gpu: nil DeviceProvider")

func init() {
	accel := &gpuimpl.EdgeAccelerator{}
	if err := edgefx.RegisterAccelerator(accel); err != nil {
		edgefx.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the GPU accelerator to use a shared GPU
// device from an external provider (e.g., a gogpu window). This avoids
// creating a separate GPU instance and enables efficient device
// sharing.
//
// The provider must also implement HalDevice() any and HalQueue() any
// for direct HAL access; providers without HAL access leave the
// accelerator on its own lazily created device.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return ErrNilProvider
	}
	return edgefx.SetAcceleratorDeviceProvider(provider)
}
