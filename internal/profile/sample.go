package profile

import "github.com/abhisek/skillpath/internal/skills"

// Sample returns a demonstration profile.
func Sample() *Profile {
	budget := 500.0
	return &Profile{
		Name:          "Alex Johnson",
		Email:         "alex.johnson@example.com",
		LearningStyle: "Visual and hands-on",
		Skills: []SkillEntry{
			{Skill: "Python", Level: skills.Intermediate, YearsExperience: 2, Confidence: 7},
			{Skill: "SQL", Level: skills.Beginner, YearsExperience: 0.5, Confidence: 5},
			{Skill: "Statistics", Level: skills.Beginner, YearsExperience: 1, Confidence: 4},
		},
		Goals: []Goal{
			{Skill: "Machine Learning", TargetLevel: skills.Intermediate, Priority: 1, DeadlineMonths: 6},
			{Skill: "Data Analysis", TargetLevel: skills.Advanced, Priority: 2, DeadlineMonths: 4},
			{Skill: "Deep Learning", TargetLevel: skills.Beginner, Priority: 3, DeadlineMonths: 12},
		},
		Constraints: Constraints{
			HoursPerWeek: 10,
			BudgetUSD:    &budget,
		},
	}
}
