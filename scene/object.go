// Package scene models the objects a composition is built from: posable
// nodes with bounding geometry and meshes, the camera, and lights. The
// scene graph itself is owned by the caller; this package only reads and
// writes poses and visibility on it.
package scene

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/spatialmath"
)

// Object is one node of a scene hierarchy. Location and Rotation are
// relative to the parent node (world-relative for roots). Placement mutates
// Location, Rotation and Hidden each image cycle; everything else is fixed
// scene description.
type Object struct {
	name string

	Location r3.Vector
	Rotation spatialmath.EulerAngles

	// Hidden excludes the object (and its children) from rendering.
	Hidden bool

	// CategoryIndex identifies the object class in emitted labels.
	CategoryIndex int

	// Material names the surface to render the object with.
	Material string

	boundBox *spatialmath.BoundingBox
	mesh     *spatialmath.Mesh
	children []*Object
}

// NewObject creates a named, visible object at the origin.
func NewObject(name string) *Object {
	return &Object{name: name}
}

// Name returns the object's name, unique within a registry.
func (o *Object) Name() string {
	return o.name
}

// SetBoundBox sets the object's local-space bounding box.
func (o *Object) SetBoundBox(bb *spatialmath.BoundingBox) {
	o.boundBox = bb
}

// BoundBox returns the object's local-space bounding box, nil if unset.
func (o *Object) BoundBox() *spatialmath.BoundingBox {
	return o.boundBox
}

// SetMesh sets the object's local-space collision mesh.
func (o *Object) SetMesh(m *spatialmath.Mesh) {
	o.mesh = m
}

// Mesh returns the object's collision mesh. When no mesh was set but a
// bounding box exists, a box mesh stands in; nil when the object has no
// geometry at all.
func (o *Object) Mesh() *spatialmath.Mesh {
	if o.mesh == nil && o.boundBox != nil {
		o.mesh = o.boundBox.ToMesh()
	}
	return o.mesh
}

// AddChild attaches a child node. The parent does not own the child's
// lifetime; it only traverses it.
func (o *Object) AddChild(child *Object) {
	o.children = append(o.children, child)
}

// Children returns the object's direct children.
func (o *Object) Children() []*Object {
	return o.children
}

// LocalPose returns the object's pose relative to its parent.
func (o *Object) LocalPose() spatialmath.Pose {
	return spatialmath.NewPose(o.Location, &o.Rotation)
}

// Flatten returns the object and all descendants in preorder, along with
// each node's world pose. Traversal is iterative with an explicit stack, so
// hierarchy depth is not bounded by the call stack.
func Flatten(root *Object) ([]*Object, []spatialmath.Pose) {
	type entry struct {
		obj    *Object
		parent spatialmath.Pose
	}
	stack := []entry{{root, spatialmath.NewZeroPose()}}
	var objects []*Object
	var poses []spatialmath.Pose
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		world := spatialmath.Compose(e.parent, e.obj.LocalPose())
		objects = append(objects, e.obj)
		poses = append(poses, world)
		// push children in reverse to visit them in declared order
		for i := len(e.obj.children) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.obj.children[i], world})
		}
	}
	return objects, poses
}

// WorldBoundCorners returns the world-space bounding-box corners of the
// object and all descendants. Nodes without a bound box contribute nothing.
func WorldBoundCorners(root *Object) []r3.Vector {
	objects, poses := Flatten(root)
	var corners []r3.Vector
	for i, o := range objects {
		if o.boundBox == nil {
			continue
		}
		for _, c := range o.boundBox.Corners() {
			corners = append(corners, poses[i].TransformPoint(c))
		}
	}
	return corners
}

// validateAcyclic walks the hierarchy and errors if any node is reachable
// twice, either through a cycle or through two parents.
func validateAcyclic(root *Object) error {
	seen := map[*Object]bool{}
	stack := []*Object{root}
	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[o] {
			return errors.Errorf("object %q appears more than once in the hierarchy of %q", o.name, root.name)
		}
		seen[o] = true
		stack = append(stack, o.children...)
	}
	return nil
}
