package engine

// Scene owns the top-level entities. Every entity reachable from them,
// children included, is indexed by UID.
type Scene struct {
	Name     string
	Entities []*Entity
	uidMap   map[uint64]*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Entities: make([]*Entity, 0),
		uidMap:   make(map[uint64]*Entity),
	}
}

// Add places e at the top level of the scene and indexes its subtree.
func (s *Scene) Add(e *Entity) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Entity)
	}
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
	s.Entities = append(s.Entities, e)
	e.Walk(func(n *Entity) bool {
		n.Scene = s
		s.uidMap[n.UID] = n
		return true
	})
}

// Attach parents child under parent and indexes the child's subtree.
func (s *Scene) Attach(parent, child *Entity) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Entity)
	}
	parent.AddChild(child)
	child.Walk(func(n *Entity) bool {
		n.Scene = s
		s.uidMap[n.UID] = n
		return true
	})
}

func (s *Scene) FindByUID(uid uint64) *Entity {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *Entity {
	var found *Entity
	s.Walk(func(e *Entity) bool {
		if found != nil {
			return false
		}
		if e.Name == name {
			found = e
			return false
		}
		return true
	})
	return found
}

// Walk visits every entity in the scene depth first.
func (s *Scene) Walk(fn func(*Entity) bool) {
	for _, e := range s.Entities {
		e.Walk(fn)
	}
}

// Len returns the number of indexed entities, children included.
func (s *Scene) Len() int {
	return len(s.uidMap)
}
