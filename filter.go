package edgefx

import (
	"errors"
	"fmt"

	"github.com/gogpu/edgefx/internal/parallel"
)

// Filter applies the edge-detection post-process to one frame at a
// time. It owns a worker pool for the CPU path; create it once and
// reuse it across frames, then Close it to release the workers.
//
// Thread safety: a Filter may be shared by concurrent Apply calls as
// long as each call uses its own destination pixmap.
type Filter struct {
	pool    *parallel.WorkerPool
	accel   FrameAccelerator
	noAccel bool
}

// NewFilter creates a Filter with the given options.
func NewFilter(opts ...FilterOption) *Filter {
	var o filterOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &Filter{
		pool:    parallel.NewWorkerPool(o.workers),
		accel:   o.accelerator,
		noAccel: o.noAccel,
	}
}

// Close releases the Filter's worker pool. The Filter must not be used
// after Close.
func (f *Filter) Close() {
	f.pool.Close()
}

// Apply runs edge detection over one frame and writes the composited
// result to dst. The frame's buffers, the view parameters and the
// config are read-only for the duration of the call; Apply returns
// only after every pixel has been written.
//
// A registered GPU accelerator is tried first; on ErrFallbackToCPU or
// any other error the frame is shaded on the CPU worker pool instead.
func (f *Filter) Apply(dst *Pixmap, frame *FrameInputs, view *ViewParams, cfg *Config) error {
	if dst == nil {
		return errors.New("edgefx: nil destination")
	}
	if frame == nil || view == nil || cfg == nil {
		return errors.New("edgefx: nil frame, view or config")
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	w, h := frame.Color.Width(), frame.Color.Height()
	if dst.Width() != w || dst.Height() != h {
		return fmt.Errorf("%w: destination %dx%d vs color %dx%d",
			ErrMismatchedInputs, dst.Width(), dst.Height(), w, h)
	}

	if a := f.accelerator(); a != nil {
		err := a.FilterFrame(dst, frame, view, cfg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("edgefx: accelerator failed, using CPU",
				"accelerator", a.Name(), "err", err)
		}
	}

	f.applyCPU(dst, frame, view, cfg)
	return nil
}

// accelerator resolves which accelerator, if any, this Filter uses.
func (f *Filter) accelerator() FrameAccelerator {
	if f.noAccel {
		return nil
	}
	if f.accel != nil {
		return f.accel
	}
	return Accelerator()
}

// applyCPU shades the frame on the worker pool, one work item per
// scanline band. Bands do not overlap and each output pixel is written
// by exactly one worker, so no synchronization is needed beyond the
// pool's completion barrier.
func (f *Filter) applyCPU(dst *Pixmap, frame *FrameInputs, view *ViewParams, cfg *Config) {
	w, h := frame.Color.Width(), frame.Color.Height()

	// A config with every detector off degenerates to a copy.
	if !cfg.enabled() {
		copy(dst.Data(), frame.Color.Data())
		return
	}

	bands := parallel.Bands(h, f.pool.Workers())
	work := make([]func(), len(bands))
	for i, band := range bands {
		b := band
		work[i] = func() {
			sampler := newFrameSampler(frame, view, cfg)
			for y := b.Y0; y < b.Y1; y++ {
				for x := 0; x < w; x++ {
					dst.SetPixel(x, y, shadePixel(&sampler, view, cfg, x, y))
				}
			}
		}
	}
	f.pool.ExecuteAll(work)
}

// pixelSample is the transient per-pixel working state. It is created
// fresh for every pixel and discarded after compositing; the algorithm
// has no cross-pixel state.
type pixelSample struct {
	ndcX, ndcY float64
	viewZ      float32
	worldPos   Vec3
	viewDir    Vec3
	normal     Vec3

	edgeDepth  float32
	edgeNormal float32
	edgeColor  float32
}

// shadePixel evaluates every enabled detector for one pixel and
// composites the result. This is the whole per-pixel kernel; the GPU
// shader mirrors it statement for statement.
func shadePixel(s *frameSampler, view *ViewParams, cfg *Config, x, y int) RGBA {
	var ps pixelSample
	ps.ndcX, ps.ndcY = ndcFromPixel(x, y, s.width, s.height)

	hasDepth := s.frame.Depth != nil
	hasNormal := s.frame.Normal != nil

	// View reconstruction happens once per pixel; the detectors reuse
	// the same world position and view direction.
	if hasDepth {
		ndcDepth := float64(s.frame.Depth.Fetch(x, y, s.sample))
		ps.viewZ = float32(view.LinearDepth(ndcDepth))
		ps.worldPos = view.WorldPosition(ps.ndcX, ps.ndcY, ndcDepth)
		ps.viewDir = view.ViewDirection(ps.worldPos)
	}
	if hasNormal {
		ps.normal = s.frame.Normal.Fetch(x, y, s.sample)
	} else {
		// Without a normal input the steep-angle term has nothing to
		// measure; a normal facing the camera makes it vanish.
		ps.normal = ps.viewDir
	}

	if hasDepth && cfg.depthEnabled() {
		ps.edgeDepth = depthEdge(s, cfg, x, y, ps.normal, ps.viewDir, ps.viewZ)
	}
	if hasNormal && cfg.normalEnabled() {
		ps.edgeNormal = normalEdge(s, cfg, x, y)
	}
	if cfg.colorEnabled() {
		ps.edgeColor = colorEdge(s, cfg, x, y)
	}

	edge := maxCombine(ps.edgeDepth, ps.edgeNormal, ps.edgeColor)
	return compositePixel(s.frame.Color.GetPixel(x, y), cfg.EdgeColor, edge)
}
