package scene

import (
	"github.com/pkg/errors"
)

// Registry resolves object names to handles. It is built once at
// configuration time; per-frame code holds resolved handles and never does
// name lookups.
type Registry struct {
	roots   []*Object
	objects map[string]*Object
}

// NewRegistry validates the given root hierarchies (acyclic, unique names)
// and indexes every node by name.
func NewRegistry(roots ...*Object) (*Registry, error) {
	r := &Registry{
		roots:   roots,
		objects: map[string]*Object{},
	}
	for _, root := range roots {
		if err := validateAcyclic(root); err != nil {
			return nil, err
		}
		objects, _ := Flatten(root)
		for _, o := range objects {
			if _, ok := r.objects[o.Name()]; ok {
				return nil, errors.Errorf("duplicate object name %q", o.Name())
			}
			r.objects[o.Name()] = o
		}
	}
	return r, nil
}

// Resolve returns the object with the given name.
func (r *Registry) Resolve(name string) (*Object, error) {
	o, ok := r.objects[name]
	if !ok {
		return nil, errors.Errorf("object %q not found", name)
	}
	return o, nil
}

// Roots returns the root objects the registry was built from.
func (r *Registry) Roots() []*Object {
	return r.roots
}
