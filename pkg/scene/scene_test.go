package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if len(s.Spheres) != 6 {
		t.Fatalf("Expected 6 spheres, got %d", len(s.Spheres))
	}

	lights := s.Lights()
	if len(lights) != 1 {
		t.Fatalf("Expected exactly one light, got %d", len(lights))
	}
	if lights[0] != s.Spheres[5] {
		t.Error("Expected the light to be the last sphere")
	}
	if lights[0].Material.EmissionColor != core.NewVec3(5, 5, 5) {
		t.Errorf("Expected light emission (5,5,5), got %v", lights[0].Material.EmissionColor)
	}

	glass := s.Spheres[1]
	if glass.Center != core.NewVec3(0, 0, -20) || glass.Radius != 4 {
		t.Errorf("Unexpected glass sphere %+v", glass)
	}
	if glass.Material.Transparency != 0.5 || glass.Material.Reflection != 1 {
		t.Errorf("Unexpected glass material %+v", glass.Material)
	}

	ground := s.Spheres[0]
	if ground.Material.IsSpecular() {
		t.Error("Ground should be diffuse")
	}
	if ground.Radius2 != 1e8 {
		t.Errorf("Expected ground Radius2=1e8, got %g", ground.Radius2)
	}

	if s.SamplingConfig.FOV != 50 || s.SamplingConfig.MaxDepth != 5 {
		t.Errorf("Unexpected sampling config %+v", s.SamplingConfig)
	}
}

func TestScene_AddSphereRejectsInvalidRadius(t *testing.T) {
	s := NewScene(DefaultSamplingConfig())

	err := s.AddSphere(core.NewVec3(0, 0, 0), -1, material.Material{})
	if !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
	if len(s.Spheres) != 0 {
		t.Errorf("Invalid sphere should not be added, got %d spheres", len(s.Spheres))
	}
}

func TestParseScene(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError error
		spheres     int
		width       int
		maxDepth    int
	}{
		{
			name: "full scene",
			data: `{"width": 32, "height": 24, "maxDepth": 3, "spheres": [
				{"center": [0, 0, -10], "radius": 2, "surfaceColor": [1, 0, 0], "reflection": 1, "transparency": 0.5},
				{"center": [0, 20, -10], "radius": 1, "surfaceColor": [0, 0, 0], "emissionColor": [3, 3, 3]}
			]}`,
			spheres:  2,
			width:    32,
			maxDepth: 3,
		},
		{
			name:     "defaults",
			data:     `{"spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1]}]}`,
			spheres:  1,
			width:    640,
			maxDepth: 5,
		},
		{
			name:        "no spheres",
			data:        `{"width": 10}`,
			expectError: ErrEmptyScene,
		},
		{
			name:        "bad radius",
			data:        `{"spheres": [{"center": [0, 0, -5], "radius": 0, "surfaceColor": [1, 1, 1]}]}`,
			expectError: geometry.ErrInvalidRadius,
		},
		{
			name:        "fov past a half turn",
			data:        `{"fov": 200, "spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1]}]}`,
			expectError: ErrInvalidFOV,
		},
		{
			name:        "fov of exactly 180",
			data:        `{"fov": 180, "spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1]}]}`,
			expectError: ErrInvalidFOV,
		},
		{
			name:        "negative fov",
			data:        `{"fov": -30, "spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1]}]}`,
			expectError: ErrInvalidFOV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene([]byte(tt.data))

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("Expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(s.Spheres) != tt.spheres {
				t.Errorf("Expected %d spheres, got %d", tt.spheres, len(s.Spheres))
			}
			if s.SamplingConfig.Width != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, s.SamplingConfig.Width)
			}
			if s.SamplingConfig.MaxDepth != tt.maxDepth {
				t.Errorf("Expected maxDepth %d, got %d", tt.maxDepth, s.SamplingConfig.MaxDepth)
			}
		})
	}
}

func TestParseScene_KeepsFOV(t *testing.T) {
	s, err := ParseScene([]byte(`{"fov": 179.5, "spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1]}]}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.SamplingConfig.FOV != 179.5 {
		t.Errorf("Expected fov 179.5, got %v", s.SamplingConfig.FOV)
	}
}

func TestCheckFOV(t *testing.T) {
	tests := []struct {
		fov   float64
		valid bool
	}{
		{0, true},
		{50, true},
		{179.9, true},
		{180, false},
		{200, false},
		{-1, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		err := CheckFOV(tt.fov)
		if tt.valid && err != nil {
			t.Errorf("CheckFOV(%v): unexpected error %v", tt.fov, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidFOV) {
			t.Errorf("CheckFOV(%v): expected ErrInvalidFOV, got %v", tt.fov, err)
		}
	}
}

func TestSamplingConfig_WithOverrides(t *testing.T) {
	base := SamplingConfig{Width: 320, Height: 240, FOV: 40, MaxDepth: 3}

	tests := []struct {
		name      string
		base      SamplingConfig
		overrides SamplingConfig
		expected  SamplingConfig
	}{
		{
			name:     "no overrides keeps the base",
			base:     base,
			expected: base,
		},
		{
			name:      "positive overrides win",
			base:      base,
			overrides: SamplingConfig{Width: 64, FOV: 30},
			expected:  SamplingConfig{Width: 64, Height: 240, FOV: 30, MaxDepth: 3},
		},
		{
			name:      "negative overrides are ignored",
			base:      base,
			overrides: SamplingConfig{Width: -1, Height: -1, FOV: -10, MaxDepth: -2},
			expected:  base,
		},
		{
			name:      "unset fields fall back to the defaults",
			overrides: SamplingConfig{MaxDepth: 8},
			expected:  SamplingConfig{Width: 640, Height: 480, FOV: 50, MaxDepth: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.base.WithOverrides(tt.overrides); got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestParseScene_InvalidMaterial(t *testing.T) {
	_, err := ParseScene([]byte(`{"spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [1, 1, 1], "transparency": 2}]}`))
	if err == nil {
		t.Error("Expected error for transparency outside [0,1]")
	}
}

func TestParseScene_MalformedJSON(t *testing.T) {
	if _, err := ParseScene([]byte(`{"spheres": [`)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	data := `{"spheres": [{"center": [0, 0, -5], "radius": 1, "surfaceColor": [0.5, 0.5, 0.5]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(s.Spheres) != 1 {
		t.Errorf("Expected 1 sphere, got %d", len(s.Spheres))
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing scene file")
	}
}
