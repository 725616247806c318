package raytracer

// Material defaults, applied by the scene loader when a scene file omits
// the corresponding tokens.
const (
	DefaultAmbient      = 0.1
	DefaultDiffuse      = 0.7
	DefaultSpecular     = 0.2
	DefaultShininess    = 32.0
	DefaultReflectivity = 0.0

	// PlaneShininess is the reference's hard-coded Phong exponent for
	// planes: the scene file's PLANE "specular" position is read as the
	// specular coefficient, but shininess is always this constant, never
	// the token the scene author may have intended. Preserved as-is.
	PlaneShininess = 10.0

	// DefaultPlaneSpecular is the specular coefficient a PLANE command
	// gets when its optional specular token is omitted, distinct from
	// DefaultSpecular used for spheres.
	DefaultPlaneSpecular = 0.1
)

// Material holds a linear albedo and the Phong illumination coefficients.
type Material struct {
	Color        Vec3
	Ambient      float64
	Diffuse      float64
	Specular     float64
	Shininess    float64
	Reflectivity float64
}

// NewMaterial builds a Material with the reference defaults for any
// coefficient not explicitly supplied.
func NewMaterial(color Vec3) Material {
	return Material{
		Color:        color,
		Ambient:      DefaultAmbient,
		Diffuse:      DefaultDiffuse,
		Specular:     DefaultSpecular,
		Shininess:    DefaultShininess,
		Reflectivity: DefaultReflectivity,
	}
}
