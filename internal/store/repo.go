package store

import (
	"context"
	"time"

	"github.com/abhisek/skillpath/internal/engine"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Profile string    // exact profile name, empty for all
}

// PathRecord is a stored learning path.
type PathRecord struct {
	ID          int
	Sequence    int64
	Timestamp   time.Time
	ProfileName string
	Path        *engine.LearningPath
}

// FailureRecord is a stored goal failure.
type FailureRecord struct {
	ID          int
	Sequence    int64
	Timestamp   time.Time
	ProfileName string
	Failure     engine.GoalFailure
}

// Stats aggregates the whole history.
type Stats struct {
	Paths              int                        `json:"paths"`
	Failures           int                        `json:"failures"`
	TotalHours         float64                    `json:"total_hours"`
	TotalCost          float64                    `json:"total_cost"`
	MeanConfidence     float64                    `json:"mean_confidence"`
	ConstraintViolated int                        `json:"constraint_violated"`
	FailuresByKind     map[engine.FailureKind]int `json:"failures_by_kind"`
	TopGoals           []GoalCount                `json:"top_goals"`
}

// GoalCount is the number of stored paths for one goal skill.
type GoalCount struct {
	Skill string `json:"skill"`
	Paths int    `json:"paths"`
}

// HistoryRepo records and reads back generated paths.
type HistoryRepo interface {
	// AppendBatch stores every path and failure of b for profileName.
	AppendBatch(ctx context.Context, profileName string, b *engine.Batch) error

	// AppendPath stores a single path.
	AppendPath(ctx context.Context, profileName string, lp *engine.LearningPath) error

	// AppendFailure stores a single goal failure.
	AppendFailure(ctx context.Context, profileName string, f engine.GoalFailure) error

	// Paths returns stored paths, newest first.
	Paths(ctx context.Context, opts QueryOpts) ([]PathRecord, error)

	// Failures returns stored failures, newest first.
	Failures(ctx context.Context, opts QueryOpts) ([]FailureRecord, error)

	// Stats aggregates the stored history.
	Stats(ctx context.Context) (*Stats, error)

	// Clear deletes all history and returns the number of rows removed.
	Clear(ctx context.Context) (int64, error)
}
