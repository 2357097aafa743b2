package spatialmath

import (
	"os"
	"sync"

	"github.com/chenzhekl/goply"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Mesh is a collision geometry that represents a set of triangles.
// Triangle points are in the frame of the mesh; the pose places that frame
// in the world.
type Mesh struct {
	pose      Pose
	triangles []*Triangle
	label     string

	once sync.Once
	bvh  *bvhNode
}

// NewMesh creates a mesh from the given pose and triangles.
func NewMesh(pose Pose, triangles []*Triangle, label string) *Mesh {
	return &Mesh{
		pose:      pose,
		triangles: triangles,
		label:     label,
	}
}

// NewMeshFromPLYFile reads a mesh from a PLY file. Faces with more than
// three vertices are triangulated fan-wise; faces with fewer are rejected.
func NewMeshFromPLYFile(path string) (*Mesh, error) {
	//nolint:gosec
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open PLY file %q", path)
	}
	defer utils.UncheckedErrorFunc(file.Close)

	ply := goply.New(file)
	vertices := ply.Elements("vertex")
	faces := ply.Elements("face")

	points := make([]r3.Vector, 0, len(vertices))
	for i, vertex := range vertices {
		x, okX := plyFloat(vertex["x"])
		y, okY := plyFloat(vertex["y"])
		z, okZ := plyFloat(vertex["z"])
		if !okX || !okY || !okZ {
			return nil, errors.Errorf("PLY vertex %d in %q has non-numeric coordinates", i, path)
		}
		points = append(points, r3.Vector{X: x, Y: y, Z: z})
	}

	triangles := make([]*Triangle, 0, len(faces))
	for i, face := range faces {
		idx, err := plyIndices(face["vertex_indices"], len(points))
		if err != nil {
			return nil, errors.Wrapf(err, "PLY face %d in %q", i, path)
		}
		if len(idx) < 3 {
			return nil, errors.Errorf("PLY face %d in %q has %d vertices, need at least 3", i, path, len(idx))
		}
		for j := 2; j < len(idx); j++ {
			triangles = append(triangles, NewTriangle(points[idx[0]], points[idx[j-1]], points[idx[j]]))
		}
	}
	return NewMesh(NewZeroPose(), triangles, path), nil
}

// Pose returns the pose of the mesh.
func (m *Mesh) Pose() Pose {
	return m.pose
}

// Triangles returns the triangles associated with the mesh.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Label returns the label of the mesh.
func (m *Mesh) Label() string {
	return m.label
}

// Transform premultiplies the mesh pose with a transform, allowing the mesh
// to be moved in space. Triangles (and the hierarchy built over them) are
// shared with the receiver since they are in the mesh frame.
func (m *Mesh) Transform(pose Pose) *Mesh {
	m.ensureBVH()
	return &Mesh{
		pose:      Compose(pose, m.pose),
		triangles: m.triangles,
		label:     m.label,
		bvh:       m.bvh,
	}
}

// CollidesWith reports whether any triangle of this mesh comes within
// collisionBuffer of any triangle of the other mesh.
func (m *Mesh) CollidesWith(other *Mesh, collisionBuffer float64) bool {
	m.ensureBVH()
	other.ensureBVH()
	collides, _ := bvhCollidesWithBVH(m.bvh, m.pose, other.bvh, other.pose, collisionBuffer)
	return collides
}

// DistanceFrom returns the separation between the two meshes: zero or
// negative when they touch, otherwise a positive lower bound on the true
// distance (exact when the closest leaves were visited).
func (m *Mesh) DistanceFrom(other *Mesh) float64 {
	m.ensureBVH()
	other.ensureBVH()
	collides, dist := bvhCollidesWithBVH(m.bvh, m.pose, other.bvh, other.pose, 0)
	if collides {
		return 0
	}
	return dist
}

// ensureBVH builds the hierarchy on first use. The bvh covers triangles in
// the mesh frame, so pose changes via Transform do not invalidate it.
func (m *Mesh) ensureBVH() {
	m.once.Do(func() {
		if m.bvh == nil {
			m.bvh = buildBVH(m.triangles)
		}
	})
}

// plyFloat coerces a PLY property value to float64.
func plyFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

// plyIndices coerces a PLY list property to vertex indices, checking range.
func plyIndices(v interface{}, numVertices int) ([]int, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, errors.Errorf("expected a vertex index list, got %T", v)
	}
	idx := make([]int, 0, len(list))
	for _, item := range list {
		f, ok := plyFloat(item)
		if !ok {
			return nil, errors.Errorf("non-numeric vertex index %v", item)
		}
		i := int(f)
		if i < 0 || i >= numVertices {
			return nil, errors.Errorf("vertex index %d out of range [0,%d)", i, numVertices)
		}
		idx = append(idx, i)
	}
	return idx, nil
}
