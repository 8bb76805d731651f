// Package selector picks the catalog resources that can close a skill gap,
// pulling in whatever is needed to satisfy their prerequisites, and scores
// each of them.
package selector

import (
	"fmt"
	"sort"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/gap"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
)

// DefaultMaxDepth bounds prerequisite resolution chains.
const DefaultMaxDepth = 5

// prerequisiteLevel is the hardest difficulty accepted for a resource that
// only fills a prerequisite: the Beginner sub-level plus one step.
const prerequisiteLevel = skills.Intermediate

// NoResourcesFoundError is returned when an open skill has no resource
// whose prerequisites can be satisfied.
type NoResourcesFoundError struct {
	Goal   profile.Goal
	Skill  string
	Reason string
}

func (e *NoResourcesFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no resources found for skill %q: %s", e.Skill, e.Reason)
	}
	return fmt.Sprintf("no resources found for skill %q", e.Skill)
}

// Options configures a Selector.
type Options struct {
	Weights  Weights
	MaxDepth int
}

// DefaultOptions returns the standard selector options.
func DefaultOptions() Options {
	return Options{
		Weights:  DefaultWeights(),
		MaxDepth: DefaultMaxDepth,
	}
}

// Candidate is a selected resource and its score.
type Candidate struct {
	Resource catalog.Resource `json:"resource"`
	Score    float64          `json:"score"`
	// Merit is the score with both fit factors held at 1. It does not
	// depend on the budget, so trimming can rank by it.
	Merit   float64 `json:"merit"`
	Factors Factors `json:"factors"`
	// Direct is true when the resource teaches an open skill of the goal,
	// false when it was only pulled in for a prerequisite.
	Direct bool `json:"direct"`
}

// Selection is the scored candidate set for one goal.
type Selection struct {
	Goal profile.Goal
	// Open lists the display names of the skills with a positive gap.
	Open []string
	// Wanted lists the normalized keys of the open skills and of every
	// prerequisite skill that had to be resolved.
	Wanted     []string
	Candidates []Candidate
}

// IDs returns the candidate IDs in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		out[i] = c.Resource.ID
	}
	return out
}

// Selector selects resources from a catalog.
type Selector struct {
	catalog *catalog.Catalog
	opts    Options
}

// New returns a Selector over c. Zero-valued options fall back to defaults.
func New(c *catalog.Catalog, opts Options) *Selector {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	opts.Weights = opts.Weights.Normalize()
	return &Selector{catalog: c, opts: opts}
}

// Select returns the candidates that close the open gaps of report.
func (s *Selector) Select(report *gap.Report, p *profile.Profile, budget profile.Budget) (*Selection, error) {
	open := report.Open()
	sel := &Selection{Goal: report.Goal}

	chosen := make(map[string]catalog.Resource)
	direct := make(map[string]bool)
	wanted := make(map[string]bool)

	for _, g := range open {
		sel.Open = append(sel.Open, g.Skill)
		wanted[skills.Normalize(g.Skill)] = true
	}

	for _, g := range open {
		candidates := s.directCandidates(g, p.Constraints)
		if len(candidates) == 0 {
			return nil, &NoResourcesFoundError{
				Goal:   report.Goal,
				Skill:  g.Skill,
				Reason: fmt.Sprintf("nothing in the catalog teaches it at %s difficulty or below", g.Required.Next().Label()),
			}
		}

		viable := 0
		for _, c := range candidates {
			r := &resolver{
				catalog:   s.catalog,
				profile:   p,
				maxDepth:  s.opts.MaxDepth,
				preferred: p.Constraints,
			}
			closure, ok := r.resolveResource(c, 0, nil)
			if !ok {
				continue
			}
			viable++
			chosen[c.ID] = c
			direct[c.ID] = true
			for _, dep := range closure.resources {
				chosen[dep.ID] = dep
			}
			for _, skill := range closure.skills {
				wanted[skill] = true
			}
		}
		if viable == 0 {
			return nil, &NoResourcesFoundError{
				Goal:   report.Goal,
				Skill:  g.Skill,
				Reason: "prerequisites of every candidate resource could not be resolved",
			}
		}
	}

	for key := range wanted {
		sel.Wanted = append(sel.Wanted, key)
	}
	sort.Strings(sel.Wanted)

	for id, r := range chosen {
		f := factorsFor(r, wanted, budget)
		sel.Candidates = append(sel.Candidates, Candidate{
			Resource: r,
			Score:    f.Score(s.opts.Weights),
			Merit:    f.Merit(s.opts.Weights),
			Factors:  f,
			Direct:   direct[id],
		})
	}
	sort.Slice(sel.Candidates, func(i, j int) bool {
		return sel.Candidates[i].Resource.ID < sel.Candidates[j].Resource.ID
	})
	return sel, nil
}

// directCandidates returns the resources teaching g's skill no more than
// one step above the required level, restricted to preferred types when
// any of them qualify.
func (s *Selector) directCandidates(g gap.SkillGap, c profile.Constraints) []catalog.Resource {
	ceiling := g.Required.Next()
	var all, preferred []catalog.Resource
	for _, r := range s.catalog.TeachersOf(g.Skill) {
		if r.Difficulty > ceiling {
			continue
		}
		all = append(all, r)
		if len(c.PreferredTypes) > 0 && c.Prefers(r.Type) {
			preferred = append(preferred, r)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return all
}
