package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
)

// ShortestPath finds a fewest-hop directed path between two nodes using
// bidirectional BFS. It returns nil when either node is missing or no path
// exists.
func ShortestPath(g *digraph.Graph, startID, endID int) []int {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return nil
	}
	if startID == endID {
		return []int{startID}
	}

	// Forward search follows outgoing edges from start
	forwardQueue := list.New()
	forwardVisited := map[int]int{startID: startID} // node -> parent
	forwardQueue.PushBack(startID)

	// Backward search follows incoming edges from end
	backwardQueue := list.New()
	backwardVisited := map[int]int{endID: endID} // node -> child
	backwardQueue.PushBack(endID)

	for forwardQueue.Len() > 0 && backwardQueue.Len() > 0 {
		if meeting, ok := expandFrontier(forwardQueue, g.Successors, forwardVisited, backwardVisited); ok {
			return reconstructPath(meeting, forwardVisited, backwardVisited)
		}
		if meeting, ok := expandFrontier(backwardQueue, g.Predecessors, backwardVisited, forwardVisited); ok {
			return reconstructPath(meeting, forwardVisited, backwardVisited)
		}
	}
	return nil
}

// expandFrontier expands one BFS level and reports the node where it met the
// other search
func expandFrontier(
	queue *list.List,
	next func(int) []int,
	visited map[int]int,
	otherVisited map[int]int,
) (int, bool) {
	levelSize := queue.Len()
	for i := 0; i < levelSize; i++ {
		currentID := queue.Remove(queue.Front()).(int)

		for _, neighborID := range next(currentID) {
			if _, seen := visited[neighborID]; seen {
				continue
			}
			visited[neighborID] = currentID
			if _, found := otherVisited[neighborID]; found {
				return neighborID, true
			}
			queue.PushBack(neighborID)
		}
	}
	return 0, false
}

// reconstructPath joins start -> meeting and meeting -> end
func reconstructPath(meeting int, forwardVisited, backwardVisited map[int]int) []int {
	forwardPath := []int{}
	node := meeting
	for node != forwardVisited[node] {
		forwardPath = append(forwardPath, node)
		node = forwardVisited[node]
	}
	forwardPath = append(forwardPath, node)
	for i, j := 0, len(forwardPath)-1; i < j; i, j = i+1, j-1 {
		forwardPath[i], forwardPath[j] = forwardPath[j], forwardPath[i]
	}

	node = meeting
	for node != backwardVisited[node] {
		node = backwardVisited[node]
		forwardPath = append(forwardPath, node)
	}
	return forwardPath
}

// HopDistances returns the BFS hop count from source to every node it reaches,
// source included at 0
func HopDistances(g *digraph.Graph, sourceID int) map[int]int {
	if !g.HasNode(sourceID) {
		return nil
	}
	distances := map[int]int{sourceID: 0}
	queue := list.New()
	queue.PushBack(sourceID)

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(int)
		for _, neighborID := range g.Successors(currentID) {
			if _, seen := distances[neighborID]; !seen {
				distances[neighborID] = distances[currentID] + 1
				queue.PushBack(neighborID)
			}
		}
	}
	return distances
}
