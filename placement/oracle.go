package placement

import (
	"github.com/scenegen/scenegen/scene"
	"github.com/scenegen/scenegen/spatialmath"
)

// MeshOverlapOracle answers pairwise 3D overlap queries between scene
// objects. World-space meshes are cached per object so that already-placed
// objects are not retransformed on every candidate test; a candidate
// object's cache entry must be invalidated whenever its pose changes.
type MeshOverlapOracle struct {
	buffer float64
	cache  map[*scene.Object][]*spatialmath.Mesh
}

// NewMeshOverlapOracle returns an oracle using the given collision buffer.
func NewMeshOverlapOracle(buffer float64) *MeshOverlapOracle {
	return &MeshOverlapOracle{
		buffer: buffer,
		cache:  map[*scene.Object][]*spatialmath.Mesh{},
	}
}

// Invalidate drops the cached world meshes for an object. Call after
// mutating the object's pose.
func (o *MeshOverlapOracle) Invalidate(obj *scene.Object) {
	delete(o.cache, obj)
}

// worldMeshes returns cached world-space meshes for the object and its
// descendants, building them on first use. The transformed meshes share
// triangle data and acceleration structures with the local-space originals.
func (o *MeshOverlapOracle) worldMeshes(obj *scene.Object) []*spatialmath.Mesh {
	if meshes, ok := o.cache[obj]; ok {
		return meshes
	}
	objects, poses := scene.Flatten(obj)
	var meshes []*spatialmath.Mesh
	for i, node := range objects {
		if m := node.Mesh(); m != nil {
			meshes = append(meshes, m.Transform(poses[i]))
		}
	}
	o.cache[obj] = meshes
	return meshes
}

// Overlap reports whether two objects' meshes come within the oracle's
// collision buffer of each other.
func (o *MeshOverlapOracle) Overlap(a, b *scene.Object) bool {
	for _, ma := range o.worldMeshes(a) {
		for _, mb := range o.worldMeshes(b) {
			if ma.CollidesWith(mb, o.buffer) {
				return true
			}
		}
	}
	return false
}

// AnyOverlap reports whether any object of setA overlaps any object of
// setB. Self-pairs are skipped, so the sets may share members.
func (o *MeshOverlapOracle) AnyOverlap(setA, setB []*scene.Object) bool {
	for _, a := range setA {
		for _, b := range setB {
			if a == b {
				continue
			}
			if o.Overlap(a, b) {
				return true
			}
		}
	}
	return false
}
