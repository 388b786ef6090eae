package loader

import (
	"strings"
	"testing"
)

func TestLoadUnsupportedFormat(t *testing.T) {
	tests := []string{"model.fbx", "model.3ds", "model.dae", "model.ply", "model"}
	for _, path := range tests {
		_, err := Load(path, DefaultOptions())
		if err == nil {
			t.Errorf("Load(%q) succeeded; want unsupported format error", path)
			continue
		}
		if !strings.Contains(err.Error(), "unsupported model format") {
			t.Errorf("Load(%q) error = %v; want unsupported format error", path, err)
		}
	}
}

func TestFormats(t *testing.T) {
	formats := Formats()
	want := []string{".glb", ".gltf", ".obj", ".stl"}

	for _, ext := range want {
		found := false
		for _, f := range formats {
			if f == ext {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Formats() = %v; missing %s", formats, ext)
		}
	}

	// Output is sorted for stable CLI listing.
	for i := 1; i < len(formats); i++ {
		if formats[i-1] > formats[i] {
			t.Errorf("Formats() not sorted: %v", formats)
			break
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Scale != 1 {
		t.Errorf("DefaultOptions().Scale = %v; want 1", opts.Scale)
	}
	if !opts.SmoothNormals {
		t.Error("DefaultOptions().SmoothNormals should be true")
	}
}
