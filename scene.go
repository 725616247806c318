package raytracer

// DefaultBackground is the background color used when a scene file
// contains no BACKGROUND command.
var DefaultBackground = RGB(0.1, 0.1, 0.2)

// Scene is an unordered collection of primitives and lights, one camera,
// and a background color. Built once by the loader and read-only for the
// duration of a render.
type Scene struct {
	Objects    []SceneObject
	Lights     []Light
	Camera     *Camera
	Background Vec3
}

// NewScene returns an empty scene with the reference default background.
func NewScene() *Scene {
	return &Scene{Background: DefaultBackground}
}

func (s *Scene) AddObject(obj SceneObject) {
	s.Objects = append(s.Objects, obj)
}

func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}
