// Package loader turns model files on disk into scene meshes. Each format
// is handled by a decoder registered against its file extension; the actual
// parsing is delegated to the format's import library.
package loader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"modelview/scene"
)

// Options controls load-time processing common to all formats.
type Options struct {
	// Scale is a uniform factor applied to every vertex position.
	Scale float64
	// SmoothNormals computes area-weighted vertex normals for groups
	// whose source carried none.
	SmoothNormals bool
}

// DefaultOptions returns the options the viewer uses unless overridden.
func DefaultOptions() Options {
	return Options{Scale: 1, SmoothNormals: true}
}

// DecodeFunc decodes a model file into a mesh.
type DecodeFunc func(path string, opts Options) (*scene.Mesh, error)

var decoders = make(map[string]DecodeFunc)

// Register associates a lowercase file extension (including the dot) with a
// decoder. Called from the init functions of the format files.
func Register(ext string, f DecodeFunc) {
	decoders[ext] = f
}

// Formats returns the sorted list of registered file extensions.
func Formats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load decodes the model at path and applies the post-processing the
// options ask for. The format is picked by file extension.
func Load(path string, opts Options) (*scene.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported model format %q (supported: %s)",
			ext, strings.Join(Formats(), " "))
	}

	mesh, err := decode(path, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}

	for _, g := range mesh.Groups {
		if g.Material == nil {
			g.Material = scene.DefaultMaterial()
		}
		if opts.SmoothNormals && !scene.HasNormals(g) {
			scene.ComputeSmoothNormals(g)
		}
	}
	if opts.Scale != 0 && opts.Scale != 1 {
		mesh.Scale(float32(opts.Scale))
	}
	return mesh, nil
}
