package raytracer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSphereHitFromOutside(t *testing.T) {
	center := Vec3{X: 0, Y: 0, Z: -5}
	sphere := &Sphere{Center: center, Radius: 1, Material: NewMaterial(RGB(1, 0, 0))}

	origin := Vec3{X: 0, Y: 0, Z: 0}
	direction := Vec3{X: 0, Y: 0, Z: -1}
	ray := NewRay(&origin, &direction)

	hit := sphere.Intersect(ray)
	if hit == nil {
		t.Fatalf("expected a hit, got none")
	}

	wantT := origin.Sub(&center).Length() - sphere.Radius
	if diff := cmp.Diff(hit.T, wantT, approxOpts); diff != "" {
		t.Errorf("t mismatch (-got +want):\n%s", diff)
	}

	// The normal at the near intersection point should point back along
	// the ray, toward the origin.
	wantNormal := direction.Neg()
	if diff := cmp.Diff(hit.Normal, wantNormal, approxOpts); diff != "" {
		t.Errorf("normal mismatch (-got +want):\n%s", diff)
	}
}

func TestSphereMissWhenClosestApproachExceedsRadius(t *testing.T) {
	sphere := &Sphere{Center: Vec3{X: 0, Y: 5, Z: -5}, Radius: 1, Material: NewMaterial(RGB(1, 0, 0))}

	origin := Vec3{X: 0, Y: 0, Z: 0}
	direction := Vec3{X: 0, Y: 0, Z: -1}
	ray := NewRay(&origin, &direction)

	if hit := sphere.Intersect(ray); hit != nil {
		t.Fatalf("expected no hit, got %+v", hit)
	}
}

func TestSphereSelfIntersectionSuppressed(t *testing.T) {
	sphere := &Sphere{Center: Vec3{X: 0, Y: 0, Z: 0}, Radius: 1, Material: NewMaterial(RGB(1, 0, 0))}

	surfacePoint := Vec3{X: 0, Y: 0, Z: 1}
	normal := Vec3{X: 0, Y: 0, Z: 1}
	origin := *surfacePoint.Add(normal.Scale(Epsilon))
	direction := normal // positive d.n: heading away from the sphere
	ray := NewRay(&origin, &direction)

	if hit := sphere.Intersect(ray); hit != nil {
		t.Fatalf("expected no self-intersection, got %+v", hit)
	}
}

func TestPlaneHit(t *testing.T) {
	plane := NewPlane(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, NewMaterial(RGB(0.5, 0.5, 0.5)))

	origin := Vec3{X: 0, Y: 5, Z: 0}
	direction := Vec3{X: 0, Y: -1, Z: 0}
	ray := NewRay(&origin, &direction)

	hit := plane.Intersect(ray)
	if hit == nil {
		t.Fatalf("expected a hit, got none")
	}

	denom := direction.Dot(&plane.Normal)
	wantT := plane.Point.Sub(&origin).Dot(&plane.Normal) / denom
	if diff := cmp.Diff(hit.T, wantT, approxOpts); diff != "" {
		t.Errorf("t mismatch (-got +want):\n%s", diff)
	}
}

func TestPlaneMissWhenParallel(t *testing.T) {
	plane := NewPlane(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, NewMaterial(RGB(0.5, 0.5, 0.5)))

	origin := Vec3{X: 0, Y: 1, Z: 0}
	direction := Vec3{X: 1, Y: 0, Z: 0}
	ray := NewRay(&origin, &direction)

	if hit := plane.Intersect(ray); hit != nil {
		t.Fatalf("expected no hit for a ray parallel to the plane, got %+v", hit)
	}
}
