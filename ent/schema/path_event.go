package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PathEvent records a generated learning path.
type PathEvent struct {
	ent.Schema
}

func (PathEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (PathEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("path_id").
			Unique().
			Comment("ID assigned by the engine"),
		field.String("profile_name").
			Default("").
			Comment("Learner the path was generated for"),
		field.String("goal_skill").
			Comment("Goal skill as written in the profile"),
		field.String("target_level").
			Comment("Goal target level: BEGINNER..EXPERT"),
		field.Int("steps").
			Default(0).
			Comment("Number of resources in the path"),
		field.Float("total_hours").
			Default(0),
		field.Float("total_cost").
			Default(0),
		field.Float("confidence").
			Default(0).
			Comment("Overall confidence, 0-100"),
		field.Bool("constraint_violated").
			Default(false),
		field.Bool("already_met").
			Default(false),
		field.JSON("data", map[string]any{}).
			Comment("Full path as JSON"),
	}
}

func (PathEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("profile_name"),
		index.Fields("goal_skill"),
	}
}
