// Package fixture generates the built-in smoke-test model.
package fixture

import (
	"fmt"
	"os"
	"strings"
)

// CubeOBJ is a unit cube centered at the origin, with per-face normals and
// texture coordinates. It exercises the OBJ path end to end without needing
// any asset on disk.
const CubeOBJ = `# modelview test fixture: unit cube
o cube
v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 -1
vn 0 0 1
vn -1 0 0
vn 1 0 0
vn 0 -1 0
vn 0 1 0
f 1/1/1 3/3/1 2/2/1
f 1/1/1 4/4/1 3/3/1
f 5/1/2 6/2/2 7/3/2
f 5/1/2 7/3/2 8/4/2
f 1/1/3 5/2/3 8/3/3
f 1/1/3 8/3/3 4/4/3
f 2/1/4 3/2/4 7/3/4
f 2/1/4 7/3/4 6/4/4
f 1/1/5 2/2/5 6/3/5
f 1/1/5 6/3/5 5/4/5
f 4/1/6 8/2/6 7/3/6
f 4/1/6 7/3/6 3/4/6
`

// WriteCubeOBJ writes the cube fixture to path.
func WriteCubeOBJ(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".obj") {
		return fmt.Errorf("fixture path %q must end in .obj", path)
	}
	if err := os.WriteFile(path, []byte(CubeOBJ), 0o644); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	return nil
}
