package evmlink

import "sort"

// Schedule is the result of topologically sorting a dependency graph.
type Schedule struct {
	// DeploymentOrder lists the libraries to deploy, prerequisites first.
	// Target contracts never appear here.
	DeploymentOrder []string

	// LibrariesNeeded is the set of libraries in DeploymentOrder.
	LibrariesNeeded map[string]bool
}

// scheduleDeployment orders the vertices of a dependency graph with Kahn's
// algorithm. targets are the contracts the caller intends to deploy; every
// other vertex is treated as a library.
//
// A vertex becomes ready once all of its dependencies have been scheduled.
// Among simultaneously ready vertices, libraries are scheduled before
// targets, libraries lexicographically, and targets in the caller-supplied
// order. If any vertex can never become ready the graph is cyclic and a
// *CircularDependencyError naming the unscheduled vertices is returned.
func scheduleDeployment(dependencies map[string][]string, targets []string) (*Schedule, error) {
	targetRank := make(map[string]int, len(targets))
	for i, name := range targets {
		targetRank[name] = i
	}

	vertexSet := make(map[string]bool, len(dependencies))
	for name, deps := range dependencies {
		vertexSet[name] = true
		for _, dep := range deps {
			vertexSet[dep] = true
		}
	}

	// dependents is the reverse adjacency: prerequisite -> vertices that
	// list it. inDegree counts only dependencies present in the vertex set.
	dependents := make(map[string][]string, len(vertexSet))
	inDegree := make(map[string]int, len(vertexSet))
	for name := range vertexSet {
		inDegree[name] = 0
	}
	for name, deps := range dependencies {
		for _, dep := range deps {
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name := range vertexSet {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	schedule := &Schedule{
		DeploymentOrder: make([]string, 0, len(vertexSet)),
		LibrariesNeeded: make(map[string]bool),
	}

	scheduled := 0
	for len(ready) > 0 {
		next := takeReady(&ready, targetRank)
		scheduled++

		if _, isTarget := targetRank[next]; !isTarget {
			schedule.DeploymentOrder = append(schedule.DeploymentOrder, next)
			schedule.LibrariesNeeded[next] = true
		}

		for _, dependent := range dependents[next] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if scheduled < len(vertexSet) {
		remaining := make(map[string]bool, len(vertexSet)-scheduled)
		for name := range vertexSet {
			if inDegree[name] > 0 {
				remaining[name] = true
			}
		}
		return nil, newCircularDependencyError(remaining)
	}

	return schedule, nil
}

// takeReady removes and returns the highest-priority vertex from the ready
// set: libraries before targets, libraries by name, targets by caller order.
func takeReady(ready *[]string, targetRank map[string]int) string {
	vertices := *ready
	best := 0
	for i := 1; i < len(vertices); i++ {
		if readyBefore(vertices[i], vertices[best], targetRank) {
			best = i
		}
	}

	next := vertices[best]
	vertices[best] = vertices[len(vertices)-1]
	*ready = vertices[:len(vertices)-1]
	return next
}

func readyBefore(a, b string, targetRank map[string]int) bool {
	rankA, targetA := targetRank[a]
	rankB, targetB := targetRank[b]

	switch {
	case targetA != targetB:
		return !targetA
	case targetA:
		return rankA < rankB
	default:
		return a < b
	}
}

// sortedNames returns the keys of a string set in lexicographic order.
func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
