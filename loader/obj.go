package loader

import (
	"log"
	"path/filepath"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"modelview/scene"
	"modelview/textures"
)

func init() {
	Register(".obj", decodeOBJ)
}

// decodeOBJ loads a Wavefront OBJ file plus its MTL material library.
// One group is emitted per (object, material) pair so each draw batch has a
// single material. Polygonal faces are fan-triangulated.
func decodeOBJ(path string, opts Options) (*scene.Mesh, error) {
	dec, err := obj.Decode(path, "")
	if err != nil {
		return nil, err
	}
	for _, w := range dec.Warnings {
		log.Printf("obj: %s", w)
	}

	dir := filepath.Dir(path)
	materials := make(map[string]*scene.Material)
	mesh := &scene.Mesh{}

	for oi := range dec.Objects {
		object := &dec.Objects[oi]
		groups := make(map[string]*scene.Group)
		// seen deduplicates v/vt/vn index triples within a group.
		seen := make(map[string]map[[3]int]uint32)

		for fi := range object.Faces {
			face := &object.Faces[fi]
			if len(face.Vertices) < 3 {
				continue
			}

			g, ok := groups[face.Material]
			if !ok {
				g = &scene.Group{
					Name:     object.Name,
					Material: convertMaterial(dec, face.Material, materials, dir),
				}
				groups[face.Material] = g
				seen[face.Material] = make(map[[3]int]uint32)
				mesh.Groups = append(mesh.Groups, g)
			}

			corner := func(k int) uint32 {
				key := [3]int{face.Vertices[k], -1, -1}
				if k < len(face.Uvs) {
					key[1] = face.Uvs[k]
				}
				if k < len(face.Normals) {
					key[2] = face.Normals[k]
				}
				if idx, ok := seen[face.Material][key]; ok {
					return idx
				}

				var pos, normal mgl32.Vec3
				var uv mgl32.Vec2
				if vi := key[0]; vi >= 0 && 3*vi+2 < len(dec.Vertices) {
					pos = mgl32.Vec3{dec.Vertices[3*vi], dec.Vertices[3*vi+1], dec.Vertices[3*vi+2]}
				}
				if ni := key[2]; ni >= 0 && 3*ni+2 < len(dec.Normals) {
					normal = mgl32.Vec3{dec.Normals[3*ni], dec.Normals[3*ni+1], dec.Normals[3*ni+2]}
				}
				if ti := key[1]; ti >= 0 && 2*ti+1 < len(dec.Uvs) {
					uv = mgl32.Vec2{dec.Uvs[2*ti], dec.Uvs[2*ti+1]}
				}

				idx := g.AddVertex(pos, normal, uv)
				seen[face.Material][key] = idx
				return idx
			}

			// Fan triangulation handles quads and larger polygons.
			for k := 2; k < len(face.Vertices); k++ {
				g.Indices = append(g.Indices, corner(0), corner(k-1), corner(k))
			}
		}
	}

	return mesh, nil
}

// convertMaterial maps an MTL material onto the scene material model,
// decoding its diffuse texture map when one is referenced.
func convertMaterial(dec *obj.Decoder, name string, cache map[string]*scene.Material, dir string) *scene.Material {
	if m, ok := cache[name]; ok {
		return m
	}

	sm := scene.DefaultMaterial()
	cache[name] = sm

	src, ok := dec.Materials[name]
	if !ok || src == nil {
		return sm
	}

	sm.Name = src.Name
	sm.Ambient = [3]float32{src.Ambient.R, src.Ambient.G, src.Ambient.B}
	sm.Diffuse = [3]float32{src.Diffuse.R, src.Diffuse.G, src.Diffuse.B}
	sm.Specular = [3]float32{src.Specular.R, src.Specular.G, src.Specular.B}
	if src.Shininess > 0 {
		sm.Shininess = src.Shininess
	}
	if src.Opacity > 0 {
		sm.Opacity = src.Opacity
	}

	if src.MapKd != "" {
		texPath := src.MapKd
		if !filepath.IsAbs(texPath) {
			texPath = filepath.Join(dir, texPath)
		}
		img, err := textures.DecodeFile(texPath)
		if err != nil {
			log.Printf("obj: material %q: %v, using placeholder", name, err)
			img = textures.Checkerboard(64, 8)
		}
		sm.DiffuseImage = img
	}
	return sm
}
