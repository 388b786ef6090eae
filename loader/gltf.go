package loader

import (
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"modelview/scene"
	"modelview/textures"
)

func init() {
	Register(".gltf", decodeGLTF)
	Register(".glb", decodeGLTF)
}

// decodeGLTF loads a glTF 2.0 document, text or binary. The node hierarchy
// is flattened: every node transform is baked into the vertex data of the
// groups it produces, so the viewer never has to walk a graph.
func decodeGLTF(path string, opts Options) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	mesh := &scene.Mesh{}

	var roots []int
	switch {
	case doc.Scene != nil:
		for _, n := range doc.Scenes[int(*doc.Scene)].Nodes {
			roots = append(roots, int(n))
		}
	case len(doc.Scenes) > 0:
		for _, n := range doc.Scenes[0].Nodes {
			roots = append(roots, int(n))
		}
	default:
		// No scene: treat every node as a root.
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	for _, root := range roots {
		if err := appendNode(doc, root, mgl32.Ident4(), mesh, path); err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

func appendNode(doc *gltf.Document, nodeIdx int, parent mgl32.Mat4, mesh *scene.Mesh, path string) error {
	if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	node := doc.Nodes[nodeIdx]
	world := parent.Mul4(nodeTransform(node))

	if node.Mesh != nil {
		gm := doc.Meshes[int(*node.Mesh)]
		for _, prim := range gm.Primitives {
			g, err := primitiveGroup(doc, prim, path)
			if err != nil {
				return fmt.Errorf("mesh %q: %w", gm.Name, err)
			}
			if g == nil {
				continue
			}
			if g.Name == "" {
				g.Name = gm.Name
			}
			g.Transform(world)
			mesh.Groups = append(mesh.Groups, g)
		}
	}

	for _, child := range node.Children {
		if err := appendNode(doc, int(child), world, mesh, path); err != nil {
			return err
		}
	}
	return nil
}

// nodeTransform returns the node's local transform, from its matrix when one
// is set and from the translation/rotation/scale triple otherwise.
func nodeTransform(node *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	identity := true
	zero := true
	for i, v := range node.Matrix {
		m[i] = float32(v)
		if v != 0 {
			zero = false
			if i%5 != 0 || v != 1 {
				identity = false
			}
		} else if i%5 == 0 {
			identity = false
		}
	}
	if !identity && !zero {
		// glTF matrices are column-major, same as mgl32.
		return m
	}

	t := node.Translation
	translate := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))

	r := node.Rotation
	quat := mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	}
	if quat.Len() == 0 {
		quat = mgl32.QuatIdent()
	}
	rotate := quat.Normalize().Mat4()

	s := node.Scale
	if s[0] == 0 && s[1] == 0 && s[2] == 0 {
		s[0], s[1], s[2] = 1, 1, 1
	}
	scale := mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2]))

	return translate.Mul4(rotate).Mul4(scale)
}

// primitiveGroup converts one glTF primitive into a draw group. Non-triangle
// primitives are skipped.
func primitiveGroup(doc *gltf.Document, prim *gltf.Primitive, path string) (*scene.Group, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		log.Printf("gltf: skipping primitive with mode %v", prim.Mode)
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[int(posIdx)], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[int(ni)], nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}

	var uvs [][2]float32
	if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[int(ti)], nil)
		if err != nil {
			return nil, fmt.Errorf("reading texture coords: %w", err)
		}
	}

	g := &scene.Group{Material: convertGLTFMaterial(doc, prim.Material, path)}
	for i, p := range positions {
		var n mgl32.Vec3
		if i < len(normals) {
			n = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		var uv mgl32.Vec2
		if i < len(uvs) {
			// glTF texture coordinates have a top-left origin.
			uv = mgl32.Vec2{uvs[i][0], 1 - uvs[i][1]}
		}
		g.AddVertex(mgl32.Vec3{p[0], p[1], p[2]}, n, uv)
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[int(*prim.Indices)], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		g.Indices = indices
	} else {
		g.Indices = make([]uint32, len(positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}
	return g, nil
}

func convertGLTFMaterial(doc *gltf.Document, matIdx *int, path string) *scene.Material {
	sm := scene.DefaultMaterial()
	if matIdx == nil || *matIdx < 0 || *matIdx >= len(doc.Materials) {
		return sm
	}
	src := doc.Materials[*matIdx]
	sm.Name = src.Name

	pbr := src.PBRMetallicRoughness
	if pbr == nil {
		return sm
	}
	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		sm.Diffuse = [3]float32{float32(f[0]), float32(f[1]), float32(f[2])}
		sm.Opacity = float32(f[3])
	}
	if pbr.BaseColorTexture != nil {
		img, err := textureImage(doc, int(pbr.BaseColorTexture.Index), path)
		if err != nil {
			log.Printf("gltf: base color texture: %v, using placeholder", err)
			img = textures.Checkerboard(64, 8)
		}
		sm.DiffuseImage = img
	}
	return sm
}

// textureImage decodes the image behind a glTF texture, wherever it lives:
// an external file, a data URI or a chunk of the binary buffer.
func textureImage(doc *gltf.Document, texIdx int, path string) (image.Image, error) {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", texIdx)
	}
	tex := doc.Textures[texIdx]
	if tex.Source == nil || int(*tex.Source) >= len(doc.Images) {
		return nil, fmt.Errorf("texture %d has no image source", texIdx)
	}
	img := doc.Images[int(*tex.Source)]

	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[int(*img.BufferView)])
		if err != nil {
			return nil, err
		}
		return textures.DecodeBytes(data)
	case strings.HasPrefix(img.URI, "data:"):
		i := strings.Index(img.URI, "base64,")
		if i < 0 {
			return nil, fmt.Errorf("unsupported data URI in image %q", img.Name)
		}
		data, err := base64.StdEncoding.DecodeString(img.URI[i+len("base64,"):])
		if err != nil {
			return nil, err
		}
		return textures.DecodeBytes(data)
	case img.URI != "":
		return textures.DecodeFile(filepath.Join(filepath.Dir(path), img.URI))
	}
	return nil, fmt.Errorf("image %q has no content", img.Name)
}
