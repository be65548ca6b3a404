package algorithms

import (
	"reflect"
	"sort"
	"testing"

	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
)

func sortedComponent(c []int) []int {
	out := append([]int(nil), c...)
	sort.Ints(out)
	return out
}

func TestSCC_EmptyGraph(t *testing.T) {
	result := StronglyConnectedComponents(digraph.New())

	if len(result.Components) != 0 {
		t.Errorf("Expected 0 SCCs, got %d", len(result.Components))
	}
	if result.SingletonCount != 0 || result.Largest != nil {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestSCC_Chain(t *testing.T) {
	g := buildGraph([2]int{1, 2}, [2]int{2, 3})

	result := StronglyConnectedComponents(g)
	if len(result.Components) != 3 || result.SingletonCount != 3 {
		t.Fatalf("Expected 3 singletons, got %v", result.Components)
	}
	// closed in reverse topological order
	want := [][]int{{3}, {2}, {1}}
	if !reflect.DeepEqual(result.Components, want) {
		t.Errorf("Components = %v, want %v", result.Components, want)
	}
	if len(result.Cyclic(g)) != 0 {
		t.Error("chain has no cyclic component")
	}
}

func TestSCC_CycleWithTail(t *testing.T) {
	g := buildGraph([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{4, 1})

	result := StronglyConnectedComponents(g)
	if len(result.Components) != 2 {
		t.Fatalf("Expected 2 SCCs, got %v", result.Components)
	}
	if got := sortedComponent(result.Largest); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Largest = %v", result.Largest)
	}
	if result.SingletonCount != 1 {
		t.Errorf("SingletonCount = %d, want 1", result.SingletonCount)
	}
	if result.NodeComponent[1] != result.NodeComponent[3] || result.NodeComponent[4] == result.NodeComponent[1] {
		t.Errorf("NodeComponent = %v", result.NodeComponent)
	}

	cyclic := result.Cyclic(g)
	if len(cyclic) != 1 || len(cyclic[0]) != 3 {
		t.Errorf("Cyclic() = %v", cyclic)
	}
}

func TestSCC_SelfLoopIsCyclic(t *testing.T) {
	g := buildGraph([2]int{5, 5}, [2]int{5, 6})

	result := StronglyConnectedComponents(g)
	cyclic := result.Cyclic(g)
	if len(cyclic) != 1 || !reflect.DeepEqual(cyclic[0], []int{5}) {
		t.Errorf("Cyclic() = %v, want [[5]]", cyclic)
	}
}

func TestSCC_TwoCycles(t *testing.T) {
	g := buildGraph(
		[2]int{1, 2}, [2]int{2, 1},
		[2]int{2, 3},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3},
	)

	result := StronglyConnectedComponents(g)
	cyclic := result.Cyclic(g)
	if len(cyclic) != 2 {
		t.Fatalf("Expected 2 cyclic components, got %v", cyclic)
	}
	if got := sortedComponent(result.Largest); !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Errorf("Largest = %v", result.Largest)
	}
}
