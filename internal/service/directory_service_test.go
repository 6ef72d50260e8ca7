package service

import (
	"testing"

	"github.com/Saikrishivgar/zoho-directory/internal/model/entity"
)

func strPtr(s string) *string { return &s }

func TestBuildDepartmentTree(t *testing.T) {
	departments := []entity.Department{
		{ID: "eng", Name: "Engineering"},
		{ID: "plat", Name: "Platform", ParentID: strPtr("eng")},
		{ID: "infra", Name: "Infrastructure", ParentID: strPtr("plat")},
		{ID: "sales", Name: "Sales"},
		{ID: "orphan", Name: "Orphan", ParentID: strPtr("missing")},
	}

	roots := BuildDepartmentTree(departments)
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}

	byID := map[string]*DepartmentNode{}
	var walk func(nodes []*DepartmentNode)
	walk = func(nodes []*DepartmentNode) {
		for _, n := range nodes {
			byID[n.Department.ID] = n
			walk(n.Children)
		}
	}
	walk(roots)

	if len(byID) != len(departments) {
		t.Fatalf("expected every department in the tree, got %d of %d", len(byID), len(departments))
	}
	if len(byID["eng"].Children) != 1 || byID["eng"].Children[0].Department.ID != "plat" {
		t.Errorf("platform should hang under engineering")
	}
	if len(byID["plat"].Children) != 1 || byID["plat"].Children[0].Department.ID != "infra" {
		t.Errorf("infrastructure should hang under platform")
	}
	if len(byID["sales"].Children) != 0 {
		t.Errorf("sales should be a leaf root")
	}
	if len(byID["orphan"].Children) != 0 {
		t.Errorf("orphan with missing parent should be a leaf root")
	}
}

func TestBuildDepartmentTreeCycle(t *testing.T) {
	departments := []entity.Department{
		{ID: "a", Name: "A", ParentID: strPtr("b")},
		{ID: "b", Name: "B", ParentID: strPtr("a")},
		{ID: "c", Name: "C", ParentID: strPtr("a")},
	}

	// Must terminate and keep every department reachable.
	roots := BuildDepartmentTree(departments)

	byID := map[string]*DepartmentNode{}
	var walk func(nodes []*DepartmentNode)
	walk = func(nodes []*DepartmentNode) {
		for _, n := range nodes {
			byID[n.Department.ID] = n
			walk(n.Children)
		}
	}
	walk(roots)

	if len(byID) != 3 {
		t.Fatalf("expected all 3 departments reachable, got %d", len(byID))
	}
	// Both cycle members become roots; c stays attached under a.
	for _, root := range roots {
		if root.Department.ID == "c" {
			t.Errorf("c has a valid acyclic parent and should not be a root")
		}
	}
	if len(byID["a"].Children) != 1 || byID["a"].Children[0].Department.ID != "c" {
		t.Errorf("c should hang under a")
	}
}
