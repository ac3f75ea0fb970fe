// Package registry tracks which entities can be selected and which of those
// are billboards or lights.
package registry

import (
	"log"

	"tokenstage/internal/components"
	"tokenstage/internal/engine"
)

// Set names one of the disjoint candidate sets handed to the picker.
type Set int

const (
	Objects Set = iota
	LightHelpers
)

func (s Set) String() string {
	if s == LightHelpers {
		return "light helpers"
	}
	return "objects"
}

// Kind classifies a selectable root.
type Kind int

const (
	KindNone Kind = iota
	KindObject
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindLight:
		return "light"
	}
	return "none"
}

// rootSet is an insertion-ordered set keyed by entity UID.
type rootSet struct {
	byUID map[uint64]*engine.Entity
	order []*engine.Entity
}

func (s *rootSet) add(e *engine.Entity) bool {
	if s.byUID == nil {
		s.byUID = make(map[uint64]*engine.Entity)
	}
	if _, ok := s.byUID[e.UID]; ok {
		return false
	}
	s.byUID[e.UID] = e
	s.order = append(s.order, e)
	return true
}

func (s *rootSet) has(e *engine.Entity) bool {
	if e == nil {
		return false
	}
	_, ok := s.byUID[e.UID]
	return ok
}

// Registry is append-only: nothing is ever unregistered.
type Registry struct {
	objects    rootSet
	billboards rootSet
	lights     rootSet
	helpers    rootSet
}

func New() *Registry {
	return &Registry{}
}

// RegisterObject makes root selectable as a solid object. Registering the
// same root twice, or a root that is already a light, is a no-op.
func (r *Registry) RegisterObject(root *engine.Entity) bool {
	if root == nil || r.lights.has(root) || r.helpers.has(root) {
		return false
	}
	return r.objects.add(root)
}

// RegisterBillboard registers root as an object that also turns to face the camera.
func (r *Registry) RegisterBillboard(root *engine.Entity) bool {
	if root == nil || r.lights.has(root) || r.helpers.has(root) {
		return false
	}
	r.objects.add(root)
	return r.billboards.add(root)
}

// RegisterLight registers a light marker with its helper. The helper must
// carry a LightHelper pointing back at marker, and neither entity may already
// be an object.
func (r *Registry) RegisterLight(marker, helper *engine.Entity) bool {
	if marker == nil || helper == nil || r.objects.has(marker) || r.objects.has(helper) {
		return false
	}
	h := engine.GetComponent[*components.LightHelper](helper)
	if h == nil || h.Light != marker {
		log.Printf("registry: helper %q does not reference light %q", helper.Name, marker.Name)
		return false
	}
	if !r.lights.add(marker) {
		return false
	}
	r.helpers.add(helper)
	return true
}

// ResolveRoot maps a picked entity to the selectable root it belongs to.
// Objects are resolved by walking ancestors; light helpers follow their
// back-reference to the marker.
func (r *Registry) ResolveRoot(hit *engine.Entity, set Set) (*engine.Entity, bool) {
	if hit == nil {
		return nil, false
	}
	if set == LightHelpers {
		h := engine.GetComponent[*components.LightHelper](hit)
		if h == nil || !r.lights.has(h.Light) {
			return nil, false
		}
		return h.Light, true
	}
	for e := hit; e != nil; e = e.Parent {
		if r.objects.has(e) {
			return e, true
		}
	}
	return nil, false
}

// Candidates returns the entities to hand to the picker for set, in
// registration order. The slice must not be modified.
func (r *Registry) Candidates(set Set) []*engine.Entity {
	if set == LightHelpers {
		return r.helpers.order
	}
	return r.objects.order
}

// Billboards returns every registered billboard root.
func (r *Registry) Billboards() []*engine.Entity {
	return r.billboards.order
}

// Lights returns every registered light marker.
func (r *Registry) Lights() []*engine.Entity {
	return r.lights.order
}

// Helpers returns every registered light helper.
func (r *Registry) Helpers() []*engine.Entity {
	return r.helpers.order
}

func (r *Registry) KindOf(root *engine.Entity) Kind {
	switch {
	case r.lights.has(root):
		return KindLight
	case r.objects.has(root):
		return KindObject
	}
	return KindNone
}

func (r *Registry) IsLight(root *engine.Entity) bool {
	return r.lights.has(root)
}

func (r *Registry) IsBillboard(root *engine.Entity) bool {
	return r.billboards.has(root)
}
