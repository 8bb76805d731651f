package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GoalFailureEvent records a goal that could not be planned.
type GoalFailureEvent struct {
	ent.Schema
}

func (GoalFailureEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GoalFailureEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("profile_name").
			Default(""),
		field.String("goal_skill"),
		field.String("target_level").
			Default("").
			Comment("Goal target level: BEGINNER..EXPERT"),
		field.Int("priority").
			Default(0),
		field.Int("deadline_months").
			Default(0).
			Comment("0 means no deadline"),
		field.String("kind").
			Comment("profile_incomplete, no_resources or cyclic_prerequisite"),
		field.String("skill").
			Default("").
			Comment("Skill the failure is about, when known"),
		field.String("message").
			Default(""),
	}
}

func (GoalFailureEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
	}
}
