// Package anim generates a sequence of scene text files rotating one or
// more spheres around a fixed center, one file per frame.
package anim

import (
	"fmt"
	"math"
)

// RotatingSphere is one sphere whose (X, Z) position orbits Center at a
// fixed Y height and radius while the frame angle advances.
type RotatingSphere struct {
	Name                  string
	X, Y, Z               float64 // initial position; Y held fixed across frames
	Radius                float64
	R, G, B               float64
	Ambient, Diffuse      float64
	Specular, Shininess   float64
	Reflectivity          float64
}

// Scene describes the static parts of an animated scene (camera, lights,
// background, an optional ground plane) plus the spheres that rotate
// around Center as the frame advances.
type Scene struct {
	CameraPos, CameraLookAt [3]float64
	FovDegrees              float64

	Lights []Light

	Background [3]float64

	HasGroundPlane bool
	GroundColor    [3]float64

	CenterX, CenterZ float64
	Spheres          []RotatingSphere
}

// Light is a point light used by the animated scene's static light rig.
type Light struct {
	X, Y, Z   float64
	Intensity float64
}

// rotatePoint rotates (x, z) by angle radians around (centerX, centerZ):
// translate to origin, rotate, translate back.
func rotatePoint(x, z, angle, centerX, centerZ float64) (float64, float64) {
	x -= centerX
	z -= centerZ

	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	newX := x*cosA - z*sinA
	newZ := x*sinA + z*cosA

	return newX + centerX, newZ + centerZ
}

// FrameAngle returns the rotation angle for frame out of totalFrames:
// theta = 2*pi*frame/totalFrames.
func FrameAngle(frame, totalFrames int) float64 {
	return 2 * math.Pi * float64(frame) / float64(totalFrames)
}

// RenderFrameScene returns the scene text for the given frame, with every
// RotatingSphere's (X, Z) rotated around (CenterX, CenterZ) by
// FrameAngle(frame, totalFrames).
func (s Scene) RenderFrameScene(frame, totalFrames int) string {
	angle := FrameAngle(frame, totalFrames)

	var out []byte
	appendf := func(format string, args ...any) {
		out = append(out, []byte(fmt.Sprintf(format, args...))...)
	}

	appendf("# Frame %d/%d\n\n", frame, totalFrames)
	appendf("CAMERA %g %g %g  %g %g %g  %g\n\n",
		s.CameraPos[0], s.CameraPos[1], s.CameraPos[2],
		s.CameraLookAt[0], s.CameraLookAt[1], s.CameraLookAt[2],
		s.FovDegrees)

	for _, l := range s.Lights {
		appendf("LIGHT %g %g %g  %g\n", l.X, l.Y, l.Z, l.Intensity)
	}
	appendf("\n")

	appendf("BACKGROUND %g %g %g\n\n", s.Background[0], s.Background[1], s.Background[2])

	if s.HasGroundPlane {
		appendf("PLANE 0 0 0  0 1 0  %g %g %g  0.1 0.6 0.1 0.3\n\n",
			s.GroundColor[0], s.GroundColor[1], s.GroundColor[2])
	}

	for _, sph := range s.Spheres {
		x, z := sph.X, sph.Z
		if x != s.CenterX || z != s.CenterZ {
			x, z = rotatePoint(sph.X, sph.Z, angle, s.CenterX, s.CenterZ)
		}
		if sph.Name != "" {
			appendf("# %s\n", sph.Name)
		}
		appendf("SPHERE %.3f %g %.3f  %g  %g %g %g  %g %g %g %g %g\n\n",
			x, sph.Y, z, sph.Radius,
			sph.R, sph.G, sph.B,
			sph.Ambient, sph.Diffuse, sph.Specular, sph.Shininess, sph.Reflectivity)
	}

	return string(out)
}

// FrameFilename is the reference's frame file naming convention.
func FrameFilename(frame int) string {
	return fmt.Sprintf("frame_%03d.txt", frame)
}
