package raytracer

import (
	"fmt"
	"math"
)

// Hit describes a ray-primitive intersection: the parameter t, the world
// point, the surface normal there, and the hit primitive's material.
type Hit struct {
	T        float64
	Point    *Vec3
	Normal   *Vec3
	Material *Material
}

// SceneObject is any primitive that can be intersected by a ray. Sphere and
// Plane are the only two variants.
type SceneObject interface {
	// Intersect returns the closest hit with t > Epsilon, or nil if the ray
	// misses the primitive entirely within that range.
	Intersect(ray *Ray) *Hit
}

// Sphere is a solid ball defined by center and radius.
type Sphere struct {
	Center   Vec3
	Radius   float64
	Material Material
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(Center: %v, Radius: %v)", &s.Center, s.Radius)
}

// Intersect solves the sphere quadratic. The normal is always
// normalize(hit - center): it is not flipped when the ray originates
// inside the sphere, matching the reference.
func (s *Sphere) Intersect(ray *Ray) *Hit {
	oc := ray.Origin.Sub(&s.Center)

	a := ray.Direction.Dot(ray.Direction) // == 1 for a normalized direction
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	var t float64
	switch {
	case t1 > Epsilon:
		t = t1
	case t2 > Epsilon:
		t = t2
	default:
		return nil
	}

	point := ray.At(t)
	normal := point.Sub(&s.Center).Normalize()
	return &Hit{T: t, Point: point, Normal: normal, Material: &s.Material}
}

// Plane is an infinite flat surface defined by a point on the plane and a
// unit normal.
type Plane struct {
	Point    Vec3
	Normal   Vec3
	Material Material
}

func (p *Plane) String() string {
	return fmt.Sprintf("Plane(Point: %v, Normal: %v)", &p.Point, &p.Normal)
}

// NewPlane normalizes the stored normal, matching the reference.
func NewPlane(point, normal Vec3, material Material) *Plane {
	n := normal
	return &Plane{Point: point, Normal: *(&n).Normalize(), Material: material}
}

// Intersect returns no hit for rays parallel to the plane (|d.n| < 1e-6) or
// whose intersection falls at or before Epsilon. The normal returned is
// always the stored normal, not flipped for back-facing rays.
func (p *Plane) Intersect(ray *Ray) *Hit {
	denom := ray.Direction.Dot(&p.Normal)
	if math.Abs(denom) < 1e-6 {
		return nil
	}

	t := p.Point.Sub(ray.Origin).Dot(&p.Normal) / denom
	if t <= Epsilon {
		return nil
	}

	point := ray.At(t)
	normal := p.Normal
	return &Hit{T: t, Point: point, Normal: &normal, Material: &p.Material}
}
