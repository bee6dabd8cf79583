package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrEmptyScene is returned for scene files without spheres
var ErrEmptyScene = errors.New("scene has no spheres")

// SphereCfg is the JSON description of one sphere
type SphereCfg struct {
	Center        [3]float32 `json:"center"`
	Radius        float32    `json:"radius"`
	SurfaceColor  [3]float32 `json:"surfaceColor"`
	Reflection    float32    `json:"reflection,omitempty"`
	Transparency  float32    `json:"transparency,omitempty"`
	EmissionColor [3]float32 `json:"emissionColor,omitempty"`
}

// FileCfg is the JSON layout of a scene file. Zero values fall back to the defaults.
type FileCfg struct {
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
	FOV      float64     `json:"fov,omitempty"`
	MaxDepth int         `json:"maxDepth,omitempty"`
	Spheres  []SphereCfg `json:"spheres"`
}

func vec(c [3]float32) core.Vec3 {
	return core.NewVec3(c[0], c[1], c[2])
}

// Material builds the sphere material
func (sc SphereCfg) Material() (material.Material, error) {
	if sc.Reflection < 0 || sc.Reflection > 1 {
		return material.Material{}, fmt.Errorf("reflection must be in [0,1], got %g", sc.Reflection)
	}
	if sc.Transparency < 0 || sc.Transparency > 1 {
		return material.Material{}, fmt.Errorf("transparency must be in [0,1], got %g", sc.Transparency)
	}
	return material.New(vec(sc.SurfaceColor), sc.Reflection, sc.Transparency, vec(sc.EmissionColor)), nil
}

// ParseScene builds a scene from JSON data
func ParseScene(data []byte) (*Scene, error) {
	var cfg FileCfg
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := CheckFOV(cfg.FOV); err != nil {
		return nil, err
	}
	config := DefaultSamplingConfig().WithOverrides(SamplingConfig{
		Width:    cfg.Width,
		Height:   cfg.Height,
		FOV:      cfg.FOV,
		MaxDepth: cfg.MaxDepth,
	})
	if len(cfg.Spheres) == 0 {
		return nil, ErrEmptyScene
	}

	s := NewScene(config)
	for i, sc := range cfg.Spheres {
		mat, err := sc.Material()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := s.AddSphere(vec(sc.Center), sc.Radius, mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// LoadScene reads a JSON scene file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
