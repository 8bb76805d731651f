// Package sequencer orders selected resources into a learning path and
// trims the path to the learner's time and money budget.
package sequencer

import (
	"slices"

	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/selector"
)

// Result is an ordered, trimmed path.
type Result struct {
	Steps   []selector.Candidate
	Dropped []selector.Candidate
	// ConstraintViolated is set when the path still exceeds the budget
	// because nothing more could be dropped without breaking it.
	ConstraintViolated bool
	TotalHours         float64
	TotalCost          float64
}

// Sequence orders the candidates of sel so that every resource follows the
// resources teaching its unmet prerequisites, then drops the lowest merit
// resources until the path fits budget.
func Sequence(sel *selector.Selection, p *profile.Profile, budget profile.Budget) (*Result, error) {
	g := buildGraph(sel.Candidates, p)
	if cycle := g.findCycle(); cycle != nil {
		return nil, &CyclicPrerequisiteError{ResourceIDs: cycle}
	}

	order := g.order()
	kept := make([]bool, len(g.nodes))
	res := &Result{}
	for _, n := range order {
		kept[n] = true
		res.TotalHours += g.nodes[n].Resource.EstimatedHours
		res.TotalCost += g.nodes[n].Resource.CostUSD
	}

	t := &trimmer{g: g, p: p, open: sel.Open, kept: kept}
	for overBudget(res, budget) {
		n := -1
		for _, cand := range order {
			if !kept[cand] || !t.droppable(cand) {
				continue
			}
			if n < 0 || dropFirst(g.nodes[cand], g.nodes[n]) {
				n = cand
			}
		}
		if n < 0 {
			res.ConstraintViolated = true
			break
		}
		kept[n] = false
		res.Dropped = append(res.Dropped, g.nodes[n])
		res.TotalHours -= g.nodes[n].Resource.EstimatedHours
		res.TotalCost -= g.nodes[n].Resource.CostUSD
	}

	// Recompute the totals from the kept steps so they are exact sums.
	res.TotalHours, res.TotalCost = 0, 0
	for _, n := range order {
		if !kept[n] {
			continue
		}
		res.Steps = append(res.Steps, g.nodes[n])
		res.TotalHours += g.nodes[n].Resource.EstimatedHours
		res.TotalCost += g.nodes[n].Resource.CostUSD
	}
	return res, nil
}

func overBudget(r *Result, b profile.Budget) bool {
	if b.HoursLimited && r.TotalHours > b.Hours {
		return true
	}
	return b.CostLimited && r.TotalCost > b.CostUSD
}

// dropFirst reports whether a should be dropped ahead of b: lower merit,
// then higher cost, then higher ID. None of these depend on the budget, so
// a larger budget only ever stops the same drop sequence earlier.
func dropFirst(a, b selector.Candidate) bool {
	if a.Merit != b.Merit {
		return a.Merit < b.Merit
	}
	if a.Resource.CostUSD != b.Resource.CostUSD {
		return a.Resource.CostUSD > b.Resource.CostUSD
	}
	return a.Resource.ID > b.Resource.ID
}

type trimmer struct {
	g    *graph
	p    *profile.Profile
	open []string
	kept []bool
}

// droppable reports whether removing n keeps the path complete: every kept
// dependent still has another kept teacher for each prerequisite n
// provides, and every open skill n teaches is still taught.
func (t *trimmer) droppable(n int) bool {
	res := t.g.nodes[n].Resource
	for _, b := range t.g.dependents[n] {
		if !t.kept[b] {
			continue
		}
		for _, pre := range t.g.nodes[b].Resource.Prerequisites {
			if t.p.Has(pre) || !res.Teaches(pre) {
				continue
			}
			if !t.taughtElsewhere(pre, n, b) {
				return false
			}
		}
	}
	for _, skill := range t.open {
		if res.Teaches(skill) && !t.taughtElsewhere(skill, n, -1) {
			return false
		}
	}
	return true
}

func (t *trimmer) taughtElsewhere(skill string, exclude ...int) bool {
	for m, node := range t.g.nodes {
		if !t.kept[m] || slices.Contains(exclude, m) {
			continue
		}
		if node.Resource.Teaches(skill) {
			return true
		}
	}
	return false
}
