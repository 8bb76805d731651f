package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/skillpath/internal/skills"
)

// validateResources performs all structural checks on the given resource set.
// Returns a combined error describing all problems found, or nil if valid.
// Prerequisite cycles are not checked here: they surface when a path is
// sequenced.
func validateResources(resources []Resource) error {
	var errs []string

	idSet := make(map[string]bool, len(resources))
	for _, r := range resources {
		if strings.TrimSpace(r.ID) == "" {
			errs = append(errs, fmt.Sprintf("resource %q has an empty ID", r.Title))
			continue
		}
		if idSet[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate resource ID: %q", r.ID))
		}
		idSet[r.ID] = true
	}

	for _, r := range resources {
		prefix := fmt.Sprintf("resource %q", r.ID)
		if !r.Type.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown type %q", prefix, r.Type))
		}
		if r.Difficulty < skills.Beginner || r.Difficulty > skills.Expert {
			errs = append(errs, fmt.Sprintf("%s: difficulty must be BEGINNER..EXPERT, got %s", prefix, r.Difficulty))
		}
		if r.EstimatedHours <= 0 {
			errs = append(errs, fmt.Sprintf("%s: EstimatedHours must be > 0, got %g", prefix, r.EstimatedHours))
		}
		if r.CostUSD < 0 {
			errs = append(errs, fmt.Sprintf("%s: CostUSD must be >= 0, got %g", prefix, r.CostUSD))
		}
		if r.Rating < 0 || r.Rating > 5 {
			errs = append(errs, fmt.Sprintf("%s: Rating must be in [0, 5], got %g", prefix, r.Rating))
		}
		if len(r.Taught()) == 0 {
			errs = append(errs, fmt.Sprintf("%s: teaches no skill that is not also a prerequisite", prefix))
		}
		for _, s := range slices.Concat(r.SkillsTaught, r.Prerequisites) {
			if skills.Normalize(s) == "" {
				errs = append(errs, fmt.Sprintf("%s: empty skill name", prefix))
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
