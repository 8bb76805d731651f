package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/goccy/go-json"

	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/skills"
)

// timeLayout is fixed width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02 15:04:05.000000000-07:00"

var pathColumns = []string{
	"id", "sequence", "timestamp", "profile_name", "data",
}

var failureColumns = []string{
	"id", "sequence", "timestamp", "profile_name", "goal_skill", "target_level",
	"priority", "deadline_months", "kind", "skill", "message",
}

// historyRepo implements HistoryRepo with ent's SQL builder.
type historyRepo struct {
	db      *sql.DB
	seq     *sequenceCounter
	builder *entsql.DialectBuilder
	now     func() time.Time
}

func (r *historyRepo) timestamp() string {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return now().UTC().Format(timeLayout)
}

// AppendBatch writes the whole batch in one transaction. Either every
// path and failure is recorded or none is.
func (r *historyRepo) AppendBatch(ctx context.Context, profileName string, b *engine.Batch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	for _, lp := range b.Paths {
		if err := r.appendPath(ctx, tx, profileName, lp); err != nil {
			return err
		}
	}
	for _, f := range b.Failures {
		if err := r.appendFailure(ctx, tx, profileName, f); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *historyRepo) AppendPath(ctx context.Context, profileName string, lp *engine.LearningPath) error {
	return r.appendPath(ctx, r.db, profileName, lp)
}

func (r *historyRepo) appendPath(ctx context.Context, q querier, profileName string, lp *engine.LearningPath) error {
	data, err := json.Marshal(lp)
	if err != nil {
		return fmt.Errorf("marshal path %s: %w", lp.ID, err)
	}
	seqNum, err := r.seq.Next(ctx, q)
	if err != nil {
		return err
	}

	query, args := r.builder.Insert(pathEventsTable).
		Columns("sequence", "timestamp", "path_id", "profile_name", "goal_skill", "target_level",
			"steps", "total_hours", "total_cost", "confidence", "constraint_violated", "already_met", "data").
		Values(seqNum, r.timestamp(), lp.ID, profileName, lp.Goal.Skill, lp.Goal.TargetLevel.String(),
			len(lp.Steps), lp.TotalHours, lp.TotalCost, lp.Confidence, lp.ConstraintViolated, lp.AlreadyMet, string(data)).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save path event: %w", err)
	}
	return nil
}

func (r *historyRepo) AppendFailure(ctx context.Context, profileName string, f engine.GoalFailure) error {
	return r.appendFailure(ctx, r.db, profileName, f)
}

func (r *historyRepo) appendFailure(ctx context.Context, q querier, profileName string, f engine.GoalFailure) error {
	seqNum, err := r.seq.Next(ctx, q)
	if err != nil {
		return err
	}

	level := ""
	if f.Goal.TargetLevel != skills.Novice {
		level = f.Goal.TargetLevel.String()
	}
	query, args := r.builder.Insert(failureEventsTable).
		Columns("sequence", "timestamp", "profile_name", "goal_skill", "target_level",
			"priority", "deadline_months", "kind", "skill", "message").
		Values(seqNum, r.timestamp(), profileName, f.Goal.Skill, level,
			f.Goal.Priority, f.Goal.DeadlineMonths, string(f.Kind), f.Skill, f.Message).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save goal failure event: %w", err)
	}
	return nil
}

// selectEvents applies opts to a query over table.
func (r *historyRepo) selectEvents(table string, columns []string, opts QueryOpts) (string, []any) {
	s := r.builder.Select(columns...).From(r.builder.Table(table))
	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", opts.From.UTC().Format(timeLayout)))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", opts.To.UTC().Format(timeLayout)))
	}
	if opts.Profile != "" {
		s.Where(entsql.EQ("profile_name", opts.Profile))
	}
	s.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s.Query()
}

func (r *historyRepo) Paths(ctx context.Context, opts QueryOpts) ([]PathRecord, error) {
	query, args := r.selectEvents(pathEventsTable, pathColumns, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query path events: %w", err)
	}
	defer rows.Close()

	var out []PathRecord
	for rows.Next() {
		var (
			rec  PathRecord
			ts   any
			data []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.ProfileName, &data); err != nil {
			return nil, fmt.Errorf("scan path event: %w", err)
		}
		if rec.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		rec.Path = &engine.LearningPath{}
		if err := json.Unmarshal(data, rec.Path); err != nil {
			return nil, fmt.Errorf("decode path event %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) Failures(ctx context.Context, opts QueryOpts) ([]FailureRecord, error) {
	query, args := r.selectEvents(failureEventsTable, failureColumns, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query goal failure events: %w", err)
	}
	defer rows.Close()

	var out []FailureRecord
	for rows.Next() {
		var (
			rec   FailureRecord
			ts    any
			level string
			kind  string
		)
		goal := &rec.Failure.Goal
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.ProfileName,
			&goal.Skill, &level, &goal.Priority, &goal.DeadlineMonths,
			&kind, &rec.Failure.Skill, &rec.Failure.Message); err != nil {
			return nil, fmt.Errorf("scan goal failure event: %w", err)
		}
		if rec.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		if level != "" {
			if goal.TargetLevel, err = skills.ParseLevel(level); err != nil {
				return nil, fmt.Errorf("goal failure event %d: %w", rec.ID, err)
			}
		}
		rec.Failure.Kind = engine.FailureKind(kind)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{FailuresByKind: make(map[engine.FailureKind]int)}

	query, args := r.builder.Select(
		entsql.Count("*"),
		entsql.Sum("total_hours"),
		entsql.Sum("total_cost"),
		entsql.Avg("confidence"),
		entsql.Sum("constraint_violated"),
	).From(r.builder.Table(pathEventsTable)).Query()

	var hours, cost, confidence sql.NullFloat64
	var violated sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Paths, &hours, &cost, &confidence, &violated); err != nil {
		return nil, fmt.Errorf("aggregate path events: %w", err)
	}
	st.TotalHours = hours.Float64
	st.TotalCost = cost.Float64
	st.MeanConfidence = confidence.Float64
	st.ConstraintViolated = int(violated.Int64)

	query, args = r.builder.Select("goal_skill", entsql.As(entsql.Count("*"), "n")).
		From(r.builder.Table(pathEventsTable)).
		GroupBy("goal_skill").
		OrderBy(entsql.Desc("n"), "goal_skill").
		Limit(5).
		Query()
	if err := r.scanCounts(ctx, query, args, func(key string, n int) {
		st.TopGoals = append(st.TopGoals, GoalCount{Skill: key, Paths: n})
	}); err != nil {
		return nil, fmt.Errorf("count paths by goal: %w", err)
	}

	query, args = r.builder.Select("kind", entsql.Count("*")).
		From(r.builder.Table(failureEventsTable)).
		GroupBy("kind").
		Query()
	if err := r.scanCounts(ctx, query, args, func(key string, n int) {
		st.FailuresByKind[engine.FailureKind(key)] = n
		st.Failures += n
	}); err != nil {
		return nil, fmt.Errorf("count failures by kind: %w", err)
	}
	return st, nil
}

func (r *historyRepo) scanCounts(ctx context.Context, query string, args []any, fn func(string, int)) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		fn(key, n)
	}
	return rows.Err()
}

func (r *historyRepo) Clear(ctx context.Context) (int64, error) {
	var total int64
	for _, table := range []string{pathEventsTable, failureEventsTable} {
		query, args := r.builder.Delete(table).Query()
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("clear %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("clear %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

// parseTimestamp accepts what the driver returns for a datetime column:
// a time.Time when it recognizes the text, the raw text otherwise.
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTimeText(t)
	case []byte:
		return parseTimeText(string(t))
	}
	return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
}

func parseTimeText(s string) (time.Time, error) {
	ts, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return ts.UTC(), nil
}
