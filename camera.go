package raytracer

import "math"

// Camera is an immutable perspective camera. Construction derives an
// orthonormal basis (forward, right, up) from position/lookAt/up and
// caches the image-plane anchors used by GetRay.
type Camera struct {
	Position Vec3
	LookAt   Vec3
	Up       Vec3
	Fov      float64 // vertical field of view, degrees
	Aspect   float64

	forward, right, upCorrected   Vec3
	lowerLeftCorner, horiz, vert Vec3
}

// NewCamera derives the camera's basis and image-plane anchors:
// forward = normalize(lookAt - position), right =
// normalize(forward x up), upCorrected = normalize(right x forward).
func NewCamera(position, lookAt, up Vec3, fovDegrees, aspect float64) *Camera {
	forward := *lookAt.Sub(&position).Normalize()
	right := *forward.Cross(&up).Normalize()
	upCorrected := *right.Cross(&forward).Normalize()

	theta := fovDegrees * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspect * halfHeight

	lowerLeftCorner := *position.Add(&forward).Sub(right.Scale(halfWidth)).Sub(upCorrected.Scale(halfHeight))
	horiz := *right.Scale(2 * halfWidth)
	vert := *upCorrected.Scale(2 * halfHeight)

	return &Camera{
		Position:        position,
		LookAt:          lookAt,
		Up:              *up.Normalize(),
		Fov:             fovDegrees,
		Aspect:          aspect,
		forward:         forward,
		right:           right,
		upCorrected:     upCorrected,
		lowerLeftCorner: lowerLeftCorner,
		horiz:           horiz,
		vert:            vert,
	}
}

// GetRay returns the primary ray through image-plane coordinates (u, v),
// both in [0, 1].
func (c *Camera) GetRay(u, v float64) *Ray {
	target := c.lowerLeftCorner.Add(c.horiz.Scale(u)).Add(c.vert.Scale(v))
	direction := target.Sub(&c.Position).Normalize()
	return &Ray{Origin: &c.Position, Direction: direction}
}
