package cache

import "testing"

func TestDependencyGraph_TransitiveDependentsFollowImportChain(t *testing.T) {
	dg := NewDependencyGraph()
	dg.AddDependency("b.cnl", "a.cnl")
	dg.AddDependency("c.cnl", "b.cnl")

	dependents := dg.GetTransitiveDependents("a.cnl")
	if len(dependents) != 2 {
		t.Fatalf("expected 2 transitive dependents, got %v", dependents)
	}
}

func TestDependencyGraph_TopologicalOrderRespectsImports(t *testing.T) {
	dg := NewDependencyGraph()
	dg.AddDependency("b.cnl", "a.cnl")
	dg.AddDependency("c.cnl", "b.cnl")

	order, err := dg.GetTopologicalOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index := map[string]int{}
	for i, p := range order {
		index[p] = i
	}
	if index["a.cnl"] > index["b.cnl"] || index["b.cnl"] > index["c.cnl"] {
		t.Fatalf("expected a before b before c, got %v", order)
	}
}

func TestDependencyGraph_CycleIsReportedAsCycleError(t *testing.T) {
	dg := NewDependencyGraph()
	dg.AddDependency("a.cnl", "b.cnl")
	dg.AddDependency("b.cnl", "a.cnl")

	_, err := dg.GetTopologicalOrder()
	if err == nil {
		t.Fatalf("expected a cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
}

func TestDependencyGraph_RemoveFileClearsBothDirections(t *testing.T) {
	dg := NewDependencyGraph()
	dg.AddDependency("b.cnl", "a.cnl")
	dg.RemoveFile("a.cnl")

	if deps := dg.GetDependencies("b.cnl"); len(deps) != 0 {
		t.Fatalf("expected b's dependency on a to be removed, got %v", deps)
	}
}
