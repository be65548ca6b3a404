package algorithms

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
)

func TestIsDAG(t *testing.T) {
	if !IsDAG(digraph.New()) {
		t.Error("empty graph should be a DAG")
	}
	if !IsDAG(buildGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})) {
		t.Error("diamond should be a DAG")
	}
	if IsDAG(buildGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})) {
		t.Error("triangle cycle should not be a DAG")
	}
}

func TestTopologicalSort_Diamond(t *testing.T) {
	g := buildGraph([2]int{1, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{3, 4})

	sorted, err := TopologicalSort(g)
	if err != nil {
		t.Fatalf("TopologicalSort failed: %v", err)
	}

	want := []int{1, 2, 3, 4}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("TopologicalSort() = %v, want %v", sorted, want)
		}
	}
}

func TestTopologicalSort_RespectsEdges(t *testing.T) {
	// inserted out of topological order on purpose
	g := buildGraph([2]int{9, 3}, [2]int{5, 9}, [2]int{3, 1}, [2]int{5, 1})

	sorted, err := TopologicalSort(g)
	if err != nil {
		t.Fatalf("TopologicalSort failed: %v", err)
	}
	pos := make(map[int]int, len(sorted))
	for i, id := range sorted {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("edge %d->%d violates order %v", e.From, e.To, sorted)
		}
	}
}

func TestTopologicalSort_WithCycle(t *testing.T) {
	g := buildGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})

	_, err := TopologicalSort(g)
	if !errors.Is(err, ErrCyclic) {
		t.Errorf("expected ErrCyclic, got %v", err)
	}
}
