// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/edgefx"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// EdgeAccelerator provides GPU-accelerated frame shading through the
// wgpu compute pipeline. It implements edgefx.FrameAccelerator and
// edgefx.DeviceProviderAware.
//
// GPU device initialization is deferred until the first frame or until
// SetDeviceProvider is called, to avoid creating a standalone Vulkan
// device that may interfere with an external DX12/Metal device
// provided later.
type EdgeAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	filter *EdgeFilter

	gpuReady       bool
	initAttempted  bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

// Interface compliance checks.
var _ edgefx.FrameAccelerator = (*EdgeAccelerator)(nil)
var _ edgefx.DeviceProviderAware = (*EdgeAccelerator)(nil)

// Name returns the accelerator identifier.
func (a *EdgeAccelerator) Name() string { return "wgpu-compute" }

// Init registers the accelerator. Device setup is lazy; see the type
// comment.
func (a *EdgeAccelerator) Init() error {
	return nil
}

// Close releases all GPU resources held by the accelerator.
func (a *EdgeAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.filter != nil {
		a.filter.Destroy()
		a.filter = nil
	}

	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Don't destroy shared resources -- we don't own them.
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.initAttempted = false
	a.externalDevice = false
}

// SetLogger sets the logger for the GPU accelerator package.
// Called by edgefx.SetLogger to propagate logging configuration.
func (a *EdgeAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// FilterFrame shades one frame on the GPU. Falls back to CPU when no
// device is available or the compute pipeline cannot run the frame.
func (a *EdgeAccelerator) FilterFrame(dst *edgefx.Pixmap, frame *edgefx.FrameInputs, view *edgefx.ViewParams, cfg *edgefx.Config) error {
	a.mu.Lock()

	if !a.gpuReady && !a.initAttempted {
		a.initAttempted = true
		if err := a.initGPU(); err != nil {
			slogger().Warn("wgpu-compute: GPU init failed, CPU shading only", "error", err)
		}
	}
	filter := a.filter
	ready := a.gpuReady
	a.mu.Unlock()

	if !ready || filter == nil {
		return edgefx.ErrFallbackToCPU
	}
	return filter.Dispatch(dst, frame, view, cfg)
}

// SetDeviceProvider switches the accelerator to use a shared GPU device
// from an external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *EdgeAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu-compute: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu-compute: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu-compute: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them.
	if a.filter != nil {
		a.filter.Destroy()
		a.filter = nil
	}
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.initAttempted = true

	filter, err := NewEdgeFilter(device, queue)
	if err != nil {
		slogger().Warn("wgpu-compute: pipeline init failed, compute unavailable", "error", err)
		// Still mark gpuReady -- device is valid, just compute isn't available.
		a.gpuReady = true
		return nil
	}
	a.filter = filter

	a.gpuReady = true
	slogger().Debug("wgpu-compute: switched to shared GPU device")
	return nil
}

// initGPU creates a standalone Vulkan device for compute-only use.
// This is the fallback path when no external device is provided via
// SetDeviceProvider.
func (a *EdgeAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue

	filter, err := NewEdgeFilter(a.device, a.queue)
	if err != nil {
		slogger().Warn("wgpu-compute: pipeline init failed, compute unavailable", "error", err)
		a.gpuReady = true
		return nil
	}
	a.filter = filter

	a.gpuReady = true
	slogger().Info("wgpu-compute: GPU initialized (standalone)", "adapter", selected.Info.Name)
	return nil
}
