package edgefx

import "math"

// ProjectionKind selects the depth linearization formula.
// Exactly one kind is active per invocation.
type ProjectionKind int

const (
	// ProjectionPerspective is a reverse-Z perspective projection.
	// The near plane distance is read from the projection matrix.
	ProjectionPerspective ProjectionKind = iota

	// ProjectionOrthographic is an orthographic projection.
	ProjectionOrthographic

	// ProjectionCustom is any other projection. Depth is linearized by
	// unprojecting through the inverse projection matrix.
	ProjectionCustom
)

// String returns the name of the projection kind.
func (k ProjectionKind) String() string {
	switch k {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "custom"
	}
}

// ViewParams carries the camera state needed to reconstruct view-space
// geometry from the depth buffer. It is produced once per frame by the
// upstream rendering stage and is read-only during Apply.
type ViewParams struct {
	// Kind selects the depth linearization formula.
	Kind ProjectionKind

	// Projection is the view-to-clip matrix.
	Projection Mat4

	// InvProjection is the clip-to-view matrix.
	InvProjection Mat4

	// InvViewProj is the clip-to-world matrix.
	InvViewProj Mat4

	// CameraPosition is the camera's world-space position.
	CameraPosition Vec3
}

// NewViewParams derives ViewParams from a projection and view matrix.
// It computes the inverse matrices once so the per-pixel path never
// inverts anything. Returns false if either inverse does not exist.
func NewViewParams(kind ProjectionKind, projection, view Mat4, cameraPos Vec3) (ViewParams, bool) {
	invProj, ok := projection.Inverse()
	if !ok {
		return ViewParams{}, false
	}
	invViewProj, ok := projection.Mul(view).Inverse()
	if !ok {
		return ViewParams{}, false
	}
	return ViewParams{
		Kind:           kind,
		Projection:     projection,
		InvProjection:  invProj,
		InvViewProj:    invViewProj,
		CameraPosition: cameraPos,
	}, true
}

// LinearDepth converts a nonlinear NDC depth value to linear
// view-space Z, negative in front of the camera.
//
// Near-zero denominators (at or beyond the clip planes) produce
// large-magnitude or non-finite values; those are accepted as
// clip-plane artifacts rather than special-cased.
func (v *ViewParams) LinearDepth(ndcDepth float64) float64 {
	switch v.Kind {
	case ProjectionPerspective:
		// Reverse-Z: view_z = -near / ndc, near = P[3][2].
		return -v.Projection.At(3, 2) / ndcDepth
	case ProjectionOrthographic:
		return -(v.Projection.At(3, 2) - ndcDepth) / v.Projection.At(2, 2)
	default:
		p := v.InvProjection.MulVec4(V4(0, 0, ndcDepth, 1))
		return p.Z / p.W
	}
}

// WorldPosition reconstructs the world-space position of a point given
// its NDC XY coordinate and nonlinear depth.
func (v *ViewParams) WorldPosition(ndcX, ndcY, ndcDepth float64) Vec3 {
	return v.InvViewProj.MulVec4(V4(ndcX, ndcY, ndcDepth, 1)).PerspectiveDivide()
}

// ViewDirection returns the unit vector from the given world position
// toward the camera. For orthographic projections all rays are
// parallel, so the direction is the camera's forward axis taken from
// the inverse view-projection matrix instead of a per-pixel
// difference.
func (v *ViewParams) ViewDirection(worldPos Vec3) Vec3 {
	if v.Kind == ProjectionOrthographic {
		// Third column of the clip-to-world matrix is the world-space
		// direction of increasing NDC depth; pointing back along it
		// faces the camera.
		d := V3(v.InvViewProj.At(2, 0), v.InvViewProj.At(2, 1), v.InvViewProj.At(2, 2))
		return d.Neg().Normalize()
	}
	return v.CameraPosition.Sub(worldPos).Normalize()
}

// ndcFromPixel converts a pixel center to NDC XY. Pixel (0,0) is the
// top-left; NDC Y points up.
func ndcFromPixel(x, y, width, height int) (float64, float64) {
	ndcX := (float64(x)+0.5)/float64(width)*2 - 1
	ndcY := 1 - (float64(y)+0.5)/float64(height)*2
	return ndcX, ndcY
}

// smoothstep is the standard Hermite smoothstep of x over [edge0, edge1].
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 >= edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}
