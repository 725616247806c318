package raytracer

import "math"

// closestHit returns the nearest valid intersection across all of the
// scene's primitives, or nil if ray hits nothing.
func closestHit(scene *Scene, ray *Ray) *Hit {
	var closest *Hit
	for _, obj := range scene.Objects {
		hit := obj.Intersect(ray)
		if hit == nil {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
		}
	}
	return closest
}

// isInShadow casts a shadow feeler and reports whether any primitive
// occludes the light within maxDistance. Early-exits on the first hit.
func isInShadow(scene *Scene, shadowRay *Ray, maxDistance float64) bool {
	for _, obj := range scene.Objects {
		hit := obj.Intersect(shadowRay)
		if hit != nil && hit.T < maxDistance {
			return true
		}
	}
	return false
}

// shade computes the Phong local illumination at a hit point: ambient +
// diffuse + specular, clamped to [0, 1]. viewDir is the incoming ray
// direction (unit length).
func shade(scene *Scene, point, normal, viewDir *Vec3, material *Material) *Vec3 {
	ambient := material.Color.Scale(material.Ambient)
	diffuse := &Vec3{}
	specular := &Vec3{}

	for _, light := range scene.Lights {
		switch l := light.(type) {
		case *AmbientLight:
			// Overwrites rather than accumulates: the last AmbientLight in
			// the scene's light list wins, matching the reference.
			ambient = material.Color.Hadamard(&l.Color).Scale(material.Ambient * l.Intensity)

		case *DirectionalLight:
			lightDir := l.Direction.Neg()
			shadowOrigin := point.Add(normal.Scale(Epsilon))
			shadowRay := &Ray{Origin: shadowOrigin, Direction: lightDir}
			if isInShadow(scene, shadowRay, math.Inf(1)) {
				continue
			}
			accumulateLighting(diffuse, specular, material, normal, viewDir, lightDir, &l.Color, l.Intensity)

		case *PointLight:
			toLight := l.Position.Sub(point)
			distance := toLight.Length()
			lightDir := toLight.Normalize()
			shadowOrigin := point.Add(normal.Scale(Epsilon))
			shadowRay := &Ray{Origin: shadowOrigin, Direction: lightDir}
			if isInShadow(scene, shadowRay, distance) {
				continue
			}
			accumulateLighting(diffuse, specular, material, normal, viewDir, lightDir, &l.Color, l.Intensity)
		}
	}

	result := ambient.Add(diffuse).Add(specular)
	return result.Clamp(0, 1)
}

// accumulateLighting adds one light's diffuse and specular contribution
// in place. lightDir points from the surface toward the light.
func accumulateLighting(diffuse, specular *Vec3, material *Material, normal, viewDir, lightDir, lightColor *Vec3, intensity float64) {
	kd := math.Max(0, normal.Dot(lightDir))
	diffuse.AddI(material.Color.Hadamard(lightColor).Scale(material.Diffuse * kd * intensity))

	if kd <= 0 {
		return
	}
	R := Reflect(lightDir.Neg(), normal)
	negV := viewDir.Neg()
	ks := math.Max(0, R.Dot(negV))
	ks = math.Pow(ks, material.Shininess)
	specular.AddI(lightColor.Scale(material.Specular * ks * intensity))
}

// trace recursively casts ray into scene, returning its shaded + reflected
// color. depth is the number of reflections taken so far; recursion stops
// at maxDepth.
func trace(scene *Scene, ray *Ray, depth, maxDepth int) *Vec3 {
	if depth >= maxDepth {
		return &Vec3{}
	}

	hit := closestHit(scene, ray)
	if hit == nil {
		bg := scene.Background
		return &bg
	}

	local := shade(scene, hit.Point, hit.Normal, ray.Direction, hit.Material)

	if hit.Material.Reflectivity <= 0 {
		return local
	}

	reflectDir := Reflect(ray.Direction, hit.Normal)
	reflectOrigin := hit.Point.Add(hit.Normal.Scale(Epsilon))
	reflectRay := &Ray{Origin: reflectOrigin, Direction: reflectDir}
	reflected := trace(scene, reflectRay, depth+1, maxDepth)

	r := hit.Material.Reflectivity
	return local.Scale(1 - r).AddI(reflected.Scale(r))
}
