package scene

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestLookup_AllScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name, Options{Seed: 42})
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if len(s.GetShapes()) == 0 {
				t.Error("Scene has no shapes")
			}
			if s.GetCamera() == nil {
				t.Error("Scene has no camera")
			}
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	s, err := Lookup("  Mirrors ", Options{})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if s.Name != "mirrors" {
		t.Errorf("Expected mirrors scene, got %q", s.Name)
	}
}

func TestLookup_CameraOverride(t *testing.T) {
	s, err := Lookup("default", Options{Camera: renderer.CameraConfig{AspectRatio: 1}})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected aspect override 1, got %f", s.CameraConfig.AspectRatio)
	}
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name    string
		scene   string
		options Options
		target  error
	}{
		{"unknown scene", "cornell-box", Options{}, ErrUnknownScene},
		{"empty name", "", Options{}, ErrUnknownScene},
		{"missing texture", "materials", Options{TexturePath: filepath.Join(t.TempDir(), "missing.png")}, fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.scene, tt.options)
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected error wrapping %v, got %v", tt.target, err)
			}
		})
	}
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != "Built-in Scenes" {
		t.Errorf("Built-in scenes should come first, got %q", response.Groups[0].Name)
	}

	total := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			if info.ID == "" || info.DisplayName == "" {
				t.Errorf("Scene missing required fields: %+v", info)
			}
			if info.Group != group.Name {
				t.Errorf("Scene %q listed under %q but belongs to %q", info.ID, group.Name, info.Group)
			}
			total++
		}
	}
	if total != len(Names()) {
		t.Errorf("Expected %d scenes across groups, got %d", len(Names()), total)
	}
}
