package sequencer

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/selector"
)

// CyclicPrerequisiteError is returned when the selected resources depend
// on each other in a loop.
type CyclicPrerequisiteError struct {
	ResourceIDs []string
}

func (e *CyclicPrerequisiteError) Error() string {
	return fmt.Sprintf("cyclic prerequisites between resources: %s", strings.Join(e.ResourceIDs, " -> "))
}

// graph is the dependency graph over a candidate set. An edge a -> b means
// a teaches a prerequisite of b that the learner does not already hold.
type graph struct {
	nodes      []selector.Candidate // by ID
	index      map[string]int
	deps       [][]int // deps[b]: nodes b depends on, ascending
	dependents [][]int // dependents[a]: nodes depending on a, ascending
}

func buildGraph(candidates []selector.Candidate, p *profile.Profile) *graph {
	g := &graph{
		nodes: slices.Clone(candidates),
		index: make(map[string]int, len(candidates)),
	}
	sort.Slice(g.nodes, func(i, j int) bool {
		return g.nodes[i].Resource.ID < g.nodes[j].Resource.ID
	})
	g.deps = make([][]int, len(g.nodes))
	g.dependents = make([][]int, len(g.nodes))

	for i, n := range g.nodes {
		g.index[n.Resource.ID] = i
	}

	for b, nb := range g.nodes {
		for _, pre := range nb.Resource.Prerequisites {
			if p.Has(pre) {
				continue
			}
			for a, na := range g.nodes {
				if a == b || !na.Resource.Teaches(pre) {
					continue
				}
				if !slices.Contains(g.deps[b], a) {
					g.deps[b] = append(g.deps[b], a)
					g.dependents[a] = append(g.dependents[a], b)
				}
			}
		}
	}
	for i := range g.nodes {
		slices.Sort(g.deps[i])
		slices.Sort(g.dependents[i])
	}
	return g
}

// findCycle runs a depth-first search over the dependency edges and
// returns the IDs along the first cycle found, or nil.
func (g *graph) findCycle() []string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(g.nodes))
	var stack []int
	var cycle []string

	var visit func(n int) bool
	visit = func(n int) bool {
		state[n] = inProgress
		stack = append(stack, n)
		for _, next := range g.dependents[n] {
			switch state[next] {
			case inProgress:
				start := slices.Index(stack, next)
				for _, i := range stack[start:] {
					cycle = append(cycle, g.nodes[i].Resource.ID)
				}
				cycle = append(cycle, g.nodes[next].Resource.ID)
				return true
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return false
	}

	for n := range g.nodes {
		if state[n] == unvisited && visit(n) {
			return cycle
		}
	}
	return nil
}

// order returns a topological order of the node indices (Kahn's
// algorithm). Among ready nodes the easiest comes first, then the best
// scored, then the cheapest, then the lowest ID. The graph must be acyclic.
func (g *graph) order() []int {
	inDegree := make([]int, len(g.nodes))
	for i := range g.nodes {
		inDegree[i] = len(g.deps[i])
	}

	var ready []int
	for i, d := range inDegree {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]int, 0, len(g.nodes))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			if g.before(ready[i], ready[best]) {
				best = i
			}
		}
		n := ready[best]
		ready = slices.Delete(ready, best, best+1)
		out = append(out, n)

		for _, dep := range g.dependents[n] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	return out
}

// before reports whether ready node a should be emitted ahead of b.
func (g *graph) before(a, b int) bool {
	ra, rb := g.nodes[a], g.nodes[b]
	if ra.Resource.Difficulty != rb.Resource.Difficulty {
		return ra.Resource.Difficulty < rb.Resource.Difficulty
	}
	if ra.Score != rb.Score {
		return ra.Score > rb.Score
	}
	if ra.Resource.CostUSD != rb.Resource.CostUSD {
		return ra.Resource.CostUSD < rb.Resource.CostUSD
	}
	return ra.Resource.ID < rb.Resource.ID
}
