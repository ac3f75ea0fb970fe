package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNewEntity(t *testing.T) {
	e := NewEntity("TestObject")

	if e.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", e.Name)
	}
	if e.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !e.Active {
		t.Error("New entity should be active")
	}
	if e.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", e.Transform.Scale)
	}
}

func TestEntityUniqueUIDs(t *testing.T) {
	e1 := NewEntity("First")
	e2 := NewEntity("Second")
	e3 := NewEntity("Third")

	if e1.UID == e2.UID || e2.UID == e3.UID || e1.UID == e3.UID {
		t.Error("Entities should have unique UIDs")
	}
}

func TestEntityParentChild(t *testing.T) {
	parent := NewEntity("Parent")
	child := NewEntity("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Errorf("Expected child in parent's Children, got %v", parent.Children)
	}
}

func TestEntityReparentRemovesFromOldParent(t *testing.T) {
	a := NewEntity("A")
	b := NewEntity("B")
	child := NewEntity("Child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Errorf("Expected old parent to have 0 children, got %d", len(a.Children))
	}
	if child.Parent != b {
		t.Error("Child should belong to new parent")
	}
}

func TestEntityRemoveChild(t *testing.T) {
	parent := NewEntity("Parent")
	child1 := NewEntity("Child1")
	child2 := NewEntity("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)
	parent.RemoveChild(child1)

	if len(parent.Children) != 1 || parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestEntityGetComponent(t *testing.T) {
	e := NewEntity("Test")
	comp := &BaseComponent{}

	e.AddComponent(comp)

	if comp.GetEntity() != e {
		t.Error("Component entity should be set")
	}
	if found := GetComponent[*BaseComponent](e); found != comp {
		t.Error("GetComponent failed to find component")
	}
	if found := GetComponent[Drawer](e); found != nil {
		t.Error("GetComponent should return nil for a missing interface")
	}
}

func TestEntityWorldPosition(t *testing.T) {
	parent := NewEntity("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Rotation = rl.Vector3{Y: 90}

	child := NewEntity("Child")
	child.Transform.Position = rl.Vector3{Z: 1}
	parent.AddChild(child)

	got := child.WorldPosition()
	want := rl.Vector3{X: 11}
	if !nearVec(got, want) {
		t.Errorf("Expected world position %v, got %v", want, got)
	}

	fromMatrix := rl.Vector3Transform(rl.Vector3Zero(), child.WorldMatrix())
	if !nearVec(fromMatrix, want) {
		t.Errorf("WorldMatrix origin %v disagrees with WorldPosition %v", fromMatrix, want)
	}
}

func TestEntityWorldScale(t *testing.T) {
	parent := NewEntity("Parent")
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	child := NewEntity("Child")
	child.Transform.Scale = rl.Vector3{X: 3, Y: 1, Z: 1}
	parent.AddChild(child)

	if got := child.WorldScale(); !nearVec(got, rl.Vector3{X: 6, Y: 2, Z: 2}) {
		t.Errorf("Expected scale (6,2,2), got %v", got)
	}
}

func TestEntityActiveInHierarchy(t *testing.T) {
	root := NewEntity("Root")
	mid := NewEntity("Mid")
	leaf := NewEntity("Leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !leaf.IsActiveInHierarchy() {
		t.Error("Leaf should be active")
	}
	mid.Active = false
	if leaf.IsActiveInHierarchy() {
		t.Error("Leaf under inactive parent should not be active in hierarchy")
	}
	if leaf.Root() != root {
		t.Error("Root should return the top-most ancestor")
	}
}
