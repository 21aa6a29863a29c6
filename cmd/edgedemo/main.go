// Command edgedemo renders a small ray-cast scene (a checkered floor
// and a box), runs edge detection over its depth, normal and color
// buffers, and writes the outlined image as PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/edgefx"
	"github.com/gogpu/edgefx/internal/exrio"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "edges.png", "output file")
		preview   = flag.String("preview", "", "optional downscaled preview file")
		depthT    = flag.Float64("depth-threshold", 1.0, "depth edge threshold (0 disables)")
		normalT   = flag.Float64("normal-threshold", 0.8, "normal edge threshold (0 disables)")
		colorT    = flag.Float64("color-threshold", 0.0, "color edge threshold (0 disables)")
		thickness = flag.Float64("thickness", 1.0, "edge sampling thickness")
		uv        = flag.Bool("uv", false, "interpret thickness in UV space (sub-pixel)")
		steepMult = flag.Float64("steep-mult", 1.0, "steep-angle threshold widening multiplier")
		workers   = flag.Int("workers", 0, "CPU worker count (0 = GOMAXPROCS)")
		dumpEXR   = flag.String("dump-exr", "", "optional directory for EXR dumps of the input buffers")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		edgefx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	frame, view := renderScene(*width, *height)

	if *dumpEXR != "" {
		if err := dumpBuffers(*dumpEXR, frame); err != nil {
			log.Fatalf("Failed to dump EXR buffers: %v", err)
		}
	}

	cfg := edgefx.DefaultConfig()
	cfg.DepthThreshold = *depthT
	cfg.NormalThreshold = *normalT
	cfg.ColorThreshold = *colorT
	cfg.DepthThickness = *thickness
	cfg.NormalThickness = *thickness
	cfg.ColorThickness = *thickness
	cfg.UVThickness = *uv
	cfg.SteepAngleMultiplier = *steepMult

	filter := edgefx.NewFilter(edgefx.WithWorkers(*workers))
	defer filter.Close()

	dst := edgefx.NewPixmap(*width, *height)
	if err := filter.Apply(dst, frame, view, &cfg); err != nil {
		log.Fatalf("Edge detection failed: %v", err)
	}

	if err := dst.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved %s (%dx%d)\n", *output, *width, *height)

	if *preview != "" {
		if err := savePreview(*preview, dst); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Saved preview %s\n", *preview)
	}
}

// renderScene ray-casts the demo scene into color, depth and normal
// buffers the way a rendering engine would hand them to the filter.
func renderScene(width, height int) (*edgefx.FrameInputs, *edgefx.ViewParams) {
	const near = 0.1

	eye := edgefx.V3(3, 2.5, 4)
	target := edgefx.V3(0, 0.6, 0)
	aspect := float64(width) / float64(height)

	proj := edgefx.PerspectiveReverseZ(math.Pi/3, aspect, near)
	viewMat := edgefx.LookAt(eye, target, edgefx.V3(0, 1, 0))
	view, ok := edgefx.NewViewParams(edgefx.ProjectionPerspective, proj, viewMat, eye)
	if !ok {
		log.Fatal("Scene camera matrices are not invertible")
	}

	frame := &edgefx.FrameInputs{
		Color:  edgefx.NewPixmap(width, height),
		Depth:  edgefx.NewDepthBuffer(width, height),
		Normal: edgefx.NewNormalBuffer(width, height),
	}

	light := edgefx.V3(-0.4, 1, 0.3).Normalize()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ndcX := (float64(x)+0.5)/float64(width)*2 - 1
			ndcY := 1 - (float64(y)+0.5)/float64(height)*2

			// Unproject an arbitrary in-front depth to get the ray.
			p := view.InvViewProj.MulVec4(edgefx.V4(ndcX, ndcY, 0.5, 1)).PerspectiveDivide()
			dir := p.Sub(eye).Normalize()

			hit, t, normal, albedo := castRay(eye, dir)
			if !hit {
				// Push the sky out to a large finite distance so depth
				// gradients at silhouettes stay well defined.
				frame.Depth.Set(x, y, float32(near/1000))
				frame.Normal.SetWorldNormal(x, y, dir.Neg())
				frame.Color.SetPixel(x, y, skyColor(ndcY))
				continue
			}

			world := eye.Add(dir.Mul(t))
			viewZ := viewMat.MulVec4(edgefx.V4(world.X, world.Y, world.Z, 1)).Z
			frame.Depth.Set(x, y, float32(-near/viewZ))
			frame.Normal.SetWorldNormal(x, y, normal)
			frame.Color.SetPixel(x, y, shade(albedo, normal, light))
		}
	}

	return frame, &view
}

// castRay intersects the ray with the floor plane and the box,
// returning the closest hit with its surface normal and base color.
func castRay(origin, dir edgefx.Vec3) (bool, float64, edgefx.Vec3, edgefx.RGBA) {
	bestT := math.Inf(1)
	var bestN edgefx.Vec3
	var bestC edgefx.RGBA
	hit := false

	// Floor plane y = 0, checkered.
	if dir.Y < -1e-9 {
		t := -origin.Y / dir.Y
		if t > 0 && t < bestT {
			p := origin.Add(dir.Mul(t))
			bestT = t
			bestN = edgefx.V3(0, 1, 0)
			bestC = checker(p.X, p.Z)
			hit = true
		}
	}

	// Axis-aligned box sitting on the floor.
	boxMin := edgefx.V3(-0.75, 0, -0.75)
	boxMax := edgefx.V3(0.75, 1.5, 0.75)
	if t, n, ok := intersectBox(origin, dir, boxMin, boxMax); ok && t < bestT {
		bestT = t
		bestN = n
		bestC = edgefx.RGB(0.85, 0.35, 0.25)
		hit = true
	}

	return hit, bestT, bestN, bestC
}

// intersectBox runs the slab test and reports the entry distance and
// the normal of the face the ray enters through.
func intersectBox(origin, dir, boxMin, boxMax edgefx.Vec3) (float64, edgefx.Vec3, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	var normal edgefx.Vec3

	axes := [3]struct {
		o, d, lo, hi float64
		n            edgefx.Vec3
	}{
		{origin.X, dir.X, boxMin.X, boxMax.X, edgefx.V3(1, 0, 0)},
		{origin.Y, dir.Y, boxMin.Y, boxMax.Y, edgefx.V3(0, 1, 0)},
		{origin.Z, dir.Z, boxMin.Z, boxMax.Z, edgefx.V3(0, 0, 1)},
	}

	for _, a := range axes {
		if math.Abs(a.d) < 1e-12 {
			if a.o < a.lo || a.o > a.hi {
				return 0, normal, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		n := a.n.Neg()
		if t1 > t2 {
			t1, t2 = t2, t1
			n = a.n
		}
		if t1 > tNear {
			tNear = t1
			normal = n
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < 0 {
			return 0, normal, false
		}
	}

	if tNear <= 0 {
		return 0, normal, false
	}
	if dir.Dot(normal) > 0 {
		normal = normal.Neg()
	}
	return tNear, normal, true
}

func checker(x, z float64) edgefx.RGBA {
	ix := int(math.Floor(x)) + int(math.Floor(z))
	if ix&1 == 0 {
		return edgefx.RGB(0.85, 0.85, 0.85)
	}
	return edgefx.RGB(0.35, 0.4, 0.45)
}

func shade(albedo edgefx.RGBA, normal, light edgefx.Vec3) edgefx.RGBA {
	lambert := math.Max(normal.Dot(light), 0)
	k := 0.25 + 0.75*lambert
	return edgefx.RGB(albedo.R*k, albedo.G*k, albedo.B*k)
}

func skyColor(ndcY float64) edgefx.RGBA {
	t := (ndcY + 1) / 2
	return edgefx.RGB(0.55+0.25*t, 0.7+0.2*t, 0.95)
}

// dumpBuffers writes the raw input buffers as EXR files for inspection
// in external tools.
func dumpBuffers(dir string, frame *edgefx.FrameInputs) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := exrio.SaveColor(filepath.Join(dir, "color.exr"), frame.Color); err != nil {
		return err
	}
	if err := exrio.SaveDepth(filepath.Join(dir, "depth.exr"), frame.Depth); err != nil {
		return err
	}
	return exrio.SaveNormals(filepath.Join(dir, "normals.exr"), frame.Normal)
}

// savePreview writes a quarter-size preview using Catmull-Rom
// downsampling.
func savePreview(path string, src *edgefx.Pixmap) error {
	full := src.ToImage()
	w := src.Width() / 4
	h := src.Height() / 4
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(small, small.Bounds(), full, full.Bounds(), xdraw.Src, nil)

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, small); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
