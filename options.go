package edgefx

// FilterOption configures a Filter during creation.
// Use functional options to customize Filter behavior.
//
// Example:
//
//	// Default: GOMAXPROCS workers, registered accelerator if any
//	f := edgefx.NewFilter()
//
//	// Serial shading, CPU only
//	f := edgefx.NewFilter(edgefx.WithWorkers(1), edgefx.WithoutAccelerator())
type FilterOption func(*filterOptions)

// filterOptions holds optional configuration for Filter creation.
type filterOptions struct {
	workers     int
	accelerator FrameAccelerator
	noAccel     bool
}

// WithWorkers sets the number of CPU workers used to shade scanline
// bands. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) FilterOption {
	return func(o *filterOptions) {
		o.workers = n
	}
}

// WithAccelerator injects a specific GPU accelerator for this Filter,
// bypassing the globally registered one. Use for dependency injection
// in tests or when running multiple filters against different devices.
func WithAccelerator(a FrameAccelerator) FilterOption {
	return func(o *filterOptions) {
		o.accelerator = a
	}
}

// WithoutAccelerator forces CPU shading even when a GPU accelerator is
// registered.
func WithoutAccelerator() FilterOption {
	return func(o *filterOptions) {
		o.noAccel = true
	}
}
