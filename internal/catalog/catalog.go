package catalog

import (
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/skillpath/internal/skills"
)

// Catalog is an immutable, indexed collection of learning resources.
// It is safe for concurrent use as long as callers do not mutate the
// slices of returned resources.
type Catalog struct {
	resources []Resource
	byID      map[string]int
	teachers  map[string][]int // normalized skill -> resource indices, best rated first
	skillName map[string]string
}

// New validates resources and builds a Catalog from them.
func New(resources []Resource) (*Catalog, error) {
	if err := validateResources(resources); err != nil {
		return nil, err
	}
	return buildCatalog(resources), nil
}

// buildCatalog constructs the indices. Resources must already be valid.
func buildCatalog(resources []Resource) *Catalog {
	c := &Catalog{
		resources: slices.Clone(resources),
		byID:      make(map[string]int, len(resources)),
		teachers:  make(map[string][]int),
		skillName: make(map[string]string),
	}

	// Deterministic base order: by ID.
	sort.Slice(c.resources, func(i, j int) bool {
		return c.resources[i].ID < c.resources[j].ID
	})

	for i := range c.resources {
		r := &c.resources[i]
		c.byID[r.ID] = i
		for _, s := range r.Taught() {
			key := skills.Normalize(s)
			c.teachers[key] = append(c.teachers[key], i)
		}
		for _, s := range slices.Concat(r.SkillsTaught, r.Prerequisites) {
			key := skills.Normalize(s)
			if _, ok := c.skillName[key]; !ok {
				c.skillName[key] = s
			}
		}
	}

	// Teachers ordered by rating desc, then ID.
	for key, idx := range c.teachers {
		sort.SliceStable(idx, func(a, b int) bool {
			ra, rb := c.resources[idx[a]], c.resources[idx[b]]
			if ra.Rating != rb.Rating {
				return ra.Rating > rb.Rating
			}
			return ra.ID < rb.ID
		})
		c.teachers[key] = idx
	}

	return c
}

// Len returns the number of resources in the catalog.
func (c *Catalog) Len() int {
	return len(c.resources)
}

// Get returns a resource by ID.
func (c *Catalog) Get(id string) (Resource, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Resource{}, false
	}
	return c.resources[i], true
}

// MustGet returns a resource by ID or an error if not found.
func (c *Catalog) MustGet(id string) (Resource, error) {
	r, ok := c.Get(id)
	if !ok {
		return Resource{}, fmt.Errorf("resource not found: %q", id)
	}
	return r, nil
}

// All returns every resource, ordered by ID.
func (c *Catalog) All() []Resource {
	return slices.Clone(c.resources)
}

// TeachersOf returns the resources that teach skill, best rated first.
func (c *Catalog) TeachersOf(skill string) []Resource {
	idx := c.teachers[skills.Normalize(skill)]
	out := make([]Resource, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.resources[i])
	}
	return out
}

// ByType returns all resources of type t, ordered by ID.
func (c *Catalog) ByType(t ResourceType) []Resource {
	var out []Resource
	for _, r := range c.resources {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Skills returns the display names of every skill the catalog mentions,
// taught or required, sorted.
func (c *Catalog) Skills() []string {
	out := make([]string, 0, len(c.skillName))
	for _, n := range c.skillName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Taxonomy returns base extended with every skill the catalog mentions.
func (c *Catalog) Taxonomy(base *skills.Taxonomy) *skills.Taxonomy {
	return base.With(c.Skills()...)
}
