// Package sceneio implements a line-oriented scene description format: a
// plain-text scene file, parsed into a raytracer.Scene. The parser is
// deliberately narrow-contract: it never participates in rendering, only
// in building the Scene the renderer then consumes.
package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	rt "github.com/elh/go-raytracer"
)

// Diagnostic is a single parse error or semantic warning produced while
// loading a scene file, carrying the 1-based source line it refers to (0
// for scene-level warnings emitted after the whole file has been read).
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

const (
	defaultAspectRatio = 16.0 / 9.0
)

var defaultUp = rt.Vec3{X: 0, Y: 1, Z: 0}
var defaultWhite = rt.RGB(1, 1, 1)

// Load parses r as a scene file. Malformed or unknown lines are reported
// as Diagnostics and skipped; loading only fails (returns a non-nil error)
// if r itself cannot be read. Missing camera/lights/objects produce
// trailing Diagnostics but do not fail the load; it is the caller's job
// to treat a missing camera as fatal before rendering.
func Load(r io.Reader) (*rt.Scene, []Diagnostic, error) {
	scene := rt.NewScene()
	var diags []Diagnostic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		command := strings.ToUpper(tokens[0])

		if err := applyCommand(scene, command, tokens); err != nil {
			diags = append(diags, Diagnostic{Line: lineNum, Message: err.Error()})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, diags, fmt.Errorf("reading scene: %w", err)
	}

	if scene.Camera == nil {
		diags = append(diags, Diagnostic{Message: "no camera defined in scene"})
	}
	if len(scene.Lights) == 0 {
		diags = append(diags, Diagnostic{Message: "no lights defined in scene"})
	}
	if len(scene.Objects) == 0 {
		diags = append(diags, Diagnostic{Message: "no objects defined in scene"})
	}

	return scene, diags, nil
}

func applyCommand(scene *rt.Scene, command string, tokens []string) error {
	switch command {
	case "CAMERA":
		return applyCamera(scene, tokens)
	case "LIGHT":
		return applyPointLight(scene, tokens)
	case "DIRECTIONAL_LIGHT":
		return applyDirectionalLight(scene, tokens)
	case "AMBIENT_LIGHT":
		return applyAmbientLight(scene, tokens)
	case "SPHERE":
		return applySphere(scene, tokens)
	case "PLANE":
		return applyPlane(scene, tokens)
	case "BACKGROUND":
		return applyBackground(scene, tokens)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func applyCamera(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 8 {
		return fmt.Errorf("CAMERA requires 7 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:8])
	if err != nil {
		return err
	}
	position := rt.Vec3{X: values[0], Y: values[1], Z: values[2]}
	lookAt := rt.Vec3{X: values[3], Y: values[4], Z: values[5]}
	fov := values[6]
	scene.Camera = rt.NewCamera(position, lookAt, defaultUp, fov, defaultAspectRatio)
	return nil
}

func applyPointLight(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 5 {
		return fmt.Errorf("LIGHT requires at least 4 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:5])
	if err != nil {
		return err
	}
	position := rt.Vec3{X: values[0], Y: values[1], Z: values[2]}
	intensity := values[3]
	color := defaultWhite
	if len(tokens) >= 8 {
		colorVals, err := parseFloats(tokens[5:8])
		if err != nil {
			return err
		}
		color = rt.RGB(colorVals[0], colorVals[1], colorVals[2])
	}
	scene.AddLight(&rt.PointLight{Position: position, Intensity: intensity, Color: color})
	return nil
}

func applyDirectionalLight(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 5 {
		return fmt.Errorf("DIRECTIONAL_LIGHT requires at least 4 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:5])
	if err != nil {
		return err
	}
	direction := rt.Vec3{X: values[0], Y: values[1], Z: values[2]}
	intensity := values[3]
	light := rt.NewDirectionalLight(direction, intensity)
	if len(tokens) >= 8 {
		colorVals, err := parseFloats(tokens[5:8])
		if err != nil {
			return err
		}
		light.Color = rt.RGB(colorVals[0], colorVals[1], colorVals[2])
	}
	scene.AddLight(light)
	return nil
}

func applyAmbientLight(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 2 {
		return fmt.Errorf("AMBIENT_LIGHT requires at least 1 parameter, got %d", len(tokens)-1)
	}
	intensity, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return fmt.Errorf("parsing intensity: %w", err)
	}
	light := rt.NewAmbientLight(intensity)
	if len(tokens) >= 5 {
		colorVals, err := parseFloats(tokens[2:5])
		if err != nil {
			return err
		}
		light.Color = rt.RGB(colorVals[0], colorVals[1], colorVals[2])
	}
	scene.AddLight(light)
	return nil
}

func applySphere(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 8 {
		return fmt.Errorf("SPHERE requires at least 7 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:8])
	if err != nil {
		return err
	}
	center := rt.Vec3{X: values[0], Y: values[1], Z: values[2]}
	radius := values[3]
	color := rt.RGB(values[4], values[5], values[6])

	material := rt.NewMaterial(color)
	if err := applyOptionalMaterialTokens(&material, tokens, 8); err != nil {
		return err
	}

	scene.AddObject(&rt.Sphere{Center: center, Radius: radius, Material: material})
	return nil
}

func applyPlane(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 10 {
		return fmt.Errorf("PLANE requires at least 9 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:10])
	if err != nil {
		return err
	}
	point := rt.Vec3{X: values[0], Y: values[1], Z: values[2]}
	normal := rt.Vec3{X: values[3], Y: values[4], Z: values[5]}
	color := rt.RGB(values[6], values[7], values[8])

	material := rt.NewMaterial(color)
	material.Specular = rt.DefaultPlaneSpecular
	// Shininess for planes is hard-coded to 10 by the reference, overriding
	// whatever the scene author intended with the "specular" position.
	material.Shininess = rt.PlaneShininess

	if len(tokens) > 10 {
		v, err := strconv.ParseFloat(tokens[10], 64)
		if err != nil {
			return fmt.Errorf("parsing ambient: %w", err)
		}
		material.Ambient = v
	}
	if len(tokens) > 11 {
		v, err := strconv.ParseFloat(tokens[11], 64)
		if err != nil {
			return fmt.Errorf("parsing diffuse: %w", err)
		}
		material.Diffuse = v
	}
	if len(tokens) > 12 {
		v, err := strconv.ParseFloat(tokens[12], 64)
		if err != nil {
			return fmt.Errorf("parsing specular: %w", err)
		}
		material.Specular = v
	}
	if len(tokens) > 13 {
		v, err := strconv.ParseFloat(tokens[13], 64)
		if err != nil {
			return fmt.Errorf("parsing reflectivity: %w", err)
		}
		material.Reflectivity = v
	}

	scene.AddObject(rt.NewPlane(point, normal, material))
	return nil
}

func applyBackground(scene *rt.Scene, tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("BACKGROUND requires 3 parameters, got %d", len(tokens)-1)
	}
	values, err := parseFloats(tokens[1:4])
	if err != nil {
		return err
	}
	scene.Background = rt.RGB(values[0], values[1], values[2])
	return nil
}

// applyOptionalMaterialTokens fills ambient/diffuse/specular/shininess/
// reflectivity from tokens[start:], in that order, leaving any unset
// coefficient at its NewMaterial default.
func applyOptionalMaterialTokens(material *rt.Material, tokens []string, start int) error {
	fields := []*float64{&material.Ambient, &material.Diffuse, &material.Specular, &material.Shininess, &material.Reflectivity}
	names := []string{"ambient", "diffuse", "specular", "shininess", "reflectivity"}
	for i, field := range fields {
		idx := start + i
		if idx >= len(tokens) {
			break
		}
		v, err := strconv.ParseFloat(tokens[idx], 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", names[i], err)
		}
		*field = v
	}
	return nil
}

func parseFloats(tokens []string) ([]float64, error) {
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as number: %w", tok, err)
		}
		values[i] = v
	}
	return values, nil
}
