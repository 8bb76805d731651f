package engine

import (
	"time"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/confidence"
	"github.com/abhisek/skillpath/internal/gap"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/selector"
)

// Step is one resource of a learning path.
type Step struct {
	Resource   catalog.Resource     `json:"resource"`
	Score      float64              `json:"score"`
	Factors    selector.Factors     `json:"factors"`
	Confidence confidence.StepScore `json:"confidence"`
}

// LearningPath is the ordered recommendation for one goal.
type LearningPath struct {
	ID    string         `json:"id"`
	Goal  profile.Goal   `json:"goal"`
	Skill string         `json:"skill"`
	Steps []Step         `json:"steps"`
	Gaps  []gap.SkillGap `json:"gaps"`

	DurationMonths int     `json:"duration_months"`
	TotalHours     float64 `json:"total_hours"`
	TotalCost      float64 `json:"total_cost"`
	Confidence     float64 `json:"confidence"`
	// Readiness is the gap report's 0-1 readiness for the goal skill.
	Readiness      float64 `json:"readiness"`

	// ConstraintViolated is set when the path exceeds the goal budget
	// because trimming could not remove anything more.
	ConstraintViolated bool               `json:"constraint_violated"`
	AlreadyMet         bool               `json:"already_met"`
	Dropped            []catalog.Resource `json:"dropped,omitempty"`
	Budget             profile.Budget     `json:"budget"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// Resources returns the path's resources in learning order.
func (lp *LearningPath) Resources() []catalog.Resource {
	out := make([]catalog.Resource, len(lp.Steps))
	for i, s := range lp.Steps {
		out[i] = s.Resource
	}
	return out
}

// FailureKind classifies why a goal produced no path.
type FailureKind string

const (
	FailureProfileIncomplete  FailureKind = "profile_incomplete"
	FailureNoResources        FailureKind = "no_resources"
	FailureCyclicPrerequisite FailureKind = "cyclic_prerequisite"
)

// GoalFailure records a goal that could not be planned.
type GoalFailure struct {
	Goal    profile.Goal `json:"goal"`
	Kind    FailureKind  `json:"kind"`
	Skill   string       `json:"skill,omitempty"`
	Message string       `json:"message"`
}

// Batch is the outcome of planning several goals.
type Batch struct {
	Paths    []*LearningPath `json:"paths"`
	Failures []GoalFailure   `json:"failures,omitempty"`
}
