package skills

import (
	"slices"
	"sort"
)

// Category groups related skills.
type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryDataScience Category = "data-science"
	CategoryWeb         Category = "web-development"
	CategoryCloud       Category = "cloud-computing"
	CategoryDatabases   Category = "databases"
	CategorySoftSkills  Category = "soft-skills"
	CategoryOther       Category = "other"
)

// AllCategories returns the built-in categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryProgramming,
		CategoryDataScience,
		CategoryWeb,
		CategoryCloud,
		CategoryDatabases,
		CategorySoftSkills,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryProgramming:
		return "Programming"
	case CategoryDataScience:
		return "Data Science"
	case CategoryWeb:
		return "Web Development"
	case CategoryCloud:
		return "Cloud Computing"
	case CategoryDatabases:
		return "Databases"
	case CategorySoftSkills:
		return "Soft Skills"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// builtinSkills lists the recognized skills of each category.
var builtinSkills = map[Category][]string{
	CategoryProgramming: {"Python", "JavaScript", "Java", "C++", "Go", "Rust", "Programming Basics"},
	CategoryDataScience: {"Machine Learning", "Statistics", "Data Analysis", "Deep Learning", "Data Visualization", "MLOps"},
	CategoryWeb:         {"HTML", "CSS", "Frontend", "Backend", "React", "Full Stack", "DevOps", "Web Development"},
	CategoryCloud:       {"Cloud Computing", "AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform"},
	CategoryDatabases:   {"SQL", "NoSQL", "Database Design", "Data Warehousing"},
	CategorySoftSkills:  {"Leadership", "Communication", "Project Management"},
}

// builtinImplied maps a skill to the skills a learner is expected to hold
// before working towards it.
var builtinImplied = map[string][]string{
	"Machine Learning": {"Python", "Statistics", "Data Analysis"},
	"Deep Learning":    {"Machine Learning", "Python", "Statistics"},
	"MLOps":            {"Machine Learning", "Docker"},
	"Backend":          {"Programming Basics"},
	"Full Stack":       {"Frontend", "Backend"},
	"DevOps":           {"Backend", "Cloud Computing"},
	"Kubernetes":       {"Docker", "Cloud Computing"},
	"Data Warehousing": {"SQL", "Database Design"},
	"React":            {"JavaScript"},
}

// Taxonomy is the set of recognized skills. It is read-only after
// construction and safe for concurrent use.
type Taxonomy struct {
	names      map[string]string // normalized -> display name
	categories map[string]Category
	implied    map[string][]string
}

// DefaultTaxonomy returns the built-in taxonomy.
func DefaultTaxonomy() *Taxonomy {
	t := &Taxonomy{
		names:      make(map[string]string),
		categories: make(map[string]Category),
		implied:    make(map[string][]string, len(builtinImplied)),
	}
	for _, c := range AllCategories() {
		for _, name := range builtinSkills[c] {
			key := Normalize(name)
			t.names[key] = name
			t.categories[key] = c
		}
	}
	for name, prereqs := range builtinImplied {
		t.implied[Normalize(name)] = slices.Clone(prereqs)
	}
	return t
}

// With returns a copy of t that also recognizes the given skill names.
// Names already known keep their category; new ones land in CategoryOther.
func (t *Taxonomy) With(names ...string) *Taxonomy {
	out := &Taxonomy{
		names:      make(map[string]string, len(t.names)+len(names)),
		categories: make(map[string]Category, len(t.categories)+len(names)),
		implied:    make(map[string][]string, len(t.implied)),
	}
	for k, v := range t.names {
		out.names[k] = v
	}
	for k, v := range t.categories {
		out.categories[k] = v
	}
	for k, v := range t.implied {
		out.implied[k] = v
	}
	for _, name := range names {
		key := Normalize(name)
		if key == "" {
			continue
		}
		if _, ok := out.names[key]; ok {
			continue
		}
		out.names[key] = name
		out.categories[key] = CategoryOther
	}
	return out
}

// Recognized reports whether the skill is part of the taxonomy.
func (t *Taxonomy) Recognized(name string) bool {
	_, ok := t.names[Normalize(name)]
	return ok
}

// Canonical returns the display name for a recognized skill.
func (t *Taxonomy) Canonical(name string) (string, bool) {
	n, ok := t.names[Normalize(name)]
	return n, ok
}

// Category returns the category of a skill, or CategoryOther if unknown.
func (t *Taxonomy) Category(name string) Category {
	if c, ok := t.categories[Normalize(name)]; ok {
		return c
	}
	return CategoryOther
}

// Implied returns the implied prerequisite skills for name.
func (t *Taxonomy) Implied(name string) []string {
	return slices.Clone(t.implied[Normalize(name)])
}

// All returns the display names of every recognized skill, sorted.
func (t *Taxonomy) All() []string {
	out := make([]string, 0, len(t.names))
	for _, n := range t.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the display names of the skills in c, sorted.
func (t *Taxonomy) ByCategory(c Category) []string {
	var out []string
	for key, cat := range t.categories {
		if cat == c {
			out = append(out, t.names[key])
		}
	}
	sort.Strings(out)
	return out
}
