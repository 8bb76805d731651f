package catalog

import (
	"github.com/abhisek/skillpath/internal/skills"
)

// ResourceType is the format of a learning resource.
type ResourceType string

const (
	TypeCourse        ResourceType = "course"
	TypeBook          ResourceType = "book"
	TypeTutorial      ResourceType = "tutorial"
	TypeProject       ResourceType = "project"
	TypeCertification ResourceType = "certification"
	TypeDocumentation ResourceType = "documentation"
	TypeVideo         ResourceType = "video"
	TypeArticle       ResourceType = "article"
	TypeInteractive   ResourceType = "interactive"
)

// AllResourceTypes returns every resource type in display order.
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		TypeCourse,
		TypeBook,
		TypeTutorial,
		TypeProject,
		TypeCertification,
		TypeDocumentation,
		TypeVideo,
		TypeArticle,
		TypeInteractive,
	}
}

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	for _, known := range AllResourceTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Resource is a single learning resource. Resources are immutable once
// loaded into a Catalog.
type Resource struct {
	ID             string       `json:"id" yaml:"id"`
	Title          string       `json:"title" yaml:"title"`
	Description    string       `json:"description,omitempty" yaml:"description"`
	Type           ResourceType `json:"type" yaml:"type"`
	Difficulty     skills.Level `json:"difficulty" yaml:"difficulty"`
	EstimatedHours float64      `json:"estimated_hours" yaml:"estimated_hours"`
	SkillsTaught   []string     `json:"skills_taught" yaml:"skills_taught"`
	Prerequisites  []string     `json:"prerequisites,omitempty" yaml:"prerequisites"`
	CostUSD        float64      `json:"cost_usd" yaml:"cost_usd"`
	Rating         float64      `json:"rating" yaml:"rating"`
	Provider       string       `json:"provider,omitempty" yaml:"provider"`
	URL            string       `json:"url,omitempty" yaml:"url"`
	Tags           []string     `json:"tags,omitempty" yaml:"tags"`
}

// Requires reports whether skill is one of the resource's prerequisites.
func (r Resource) Requires(skill string) bool {
	return containsSkill(r.Prerequisites, skill)
}

// Teaches reports whether the resource introduces skill. A skill listed as
// both taught and required is only reinforced, so it does not count.
func (r Resource) Teaches(skill string) bool {
	return containsSkill(r.SkillsTaught, skill) && !r.Requires(skill)
}

// Taught returns the skills the resource introduces (see Teaches).
func (r Resource) Taught() []string {
	out := make([]string, 0, len(r.SkillsTaught))
	for _, s := range r.SkillsTaught {
		if !r.Requires(s) {
			out = append(out, s)
		}
	}
	return out
}

// IsFree reports whether the resource costs nothing.
func (r Resource) IsFree() bool {
	return r.CostUSD == 0
}

func containsSkill(list []string, skill string) bool {
	key := skills.Normalize(skill)
	for _, s := range list {
		if skills.Normalize(s) == key {
			return true
		}
	}
	return false
}
