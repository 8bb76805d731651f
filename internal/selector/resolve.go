package selector

import (
	"slices"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
)

// closure is what a resource needs beyond the learner's profile: the
// resources filling its unmet prerequisites (dependencies first) and the
// normalized keys of those prerequisite skills.
type closure struct {
	resources []catalog.Resource
	skills    []string
}

func (c *closure) teaches(skill string) bool {
	for _, r := range c.resources {
		if r.Teaches(skill) {
			return true
		}
	}
	return false
}

// resolver walks prerequisite chains depth-first. The chain holds the
// resources currently being resolved; a prerequisite taught by one of them
// resolves to it, which leaves the cycle for the sequencer to report.
type resolver struct {
	catalog   *catalog.Catalog
	profile   *profile.Profile
	maxDepth  int
	preferred profile.Constraints
}

// resolveResource resolves every prerequisite of r that the profile does
// not satisfy.
func (rv *resolver) resolveResource(r catalog.Resource, depth int, chain []catalog.Resource) (closure, bool) {
	chain = append(slices.Clip(chain), r)

	var out closure
	for _, pre := range r.Prerequisites {
		if rv.profile.Has(pre) {
			continue
		}
		out.skills = append(out.skills, skills.Normalize(pre))
		if out.teaches(pre) || inFlight(chain, pre) {
			continue
		}
		sub, ok := rv.resolveSkill(pre, depth+1, chain)
		if !ok {
			return closure{}, false
		}
		out.resources = append(out.resources, sub.resources...)
		out.skills = append(out.skills, sub.skills...)
	}
	return out, true
}

// resolveSkill finds the best teacher of skill whose own chain can be
// completed, falling through to the next teacher when one fails.
func (rv *resolver) resolveSkill(skill string, depth int, chain []catalog.Resource) (closure, bool) {
	if depth > rv.maxDepth {
		return closure{}, false
	}
	for _, t := range rv.teachers(skill) {
		if slices.ContainsFunc(chain, func(r catalog.Resource) bool { return r.ID == t.ID }) {
			continue
		}
		sub, ok := rv.resolveResource(t, depth, chain)
		if !ok {
			continue
		}
		sub.resources = append(sub.resources, t)
		return sub, true
	}
	return closure{}, false
}

// teachers lists the resources eligible to fill a prerequisite, preferred
// types first, each group best rated first.
func (rv *resolver) teachers(skill string) []catalog.Resource {
	var preferred, rest []catalog.Resource
	for _, r := range rv.catalog.TeachersOf(skill) {
		if r.Difficulty > prerequisiteLevel {
			continue
		}
		if len(rv.preferred.PreferredTypes) > 0 && rv.preferred.Prefers(r.Type) {
			preferred = append(preferred, r)
		} else {
			rest = append(rest, r)
		}
	}
	return append(preferred, rest...)
}

func inFlight(chain []catalog.Resource, skill string) bool {
	for _, r := range chain {
		if r.Teaches(skill) {
			return true
		}
	}
	return false
}
