package skills

import (
	"fmt"
	"strings"
)

// Level is a proficiency level. The integer value is the rank used for gap
// computation and difficulty comparisons.
type Level int

const (
	Novice       Level = iota // Never used the skill
	Beginner                  // Knows the basics, needs guidance
	Intermediate              // Works independently on common tasks
	Advanced                  // Handles complex problems, mentors others
	Expert                    // Deep authority in the field
)

// AllLevels returns all levels in ascending rank order.
func AllLevels() []Level {
	return []Level{Novice, Beginner, Intermediate, Advanced, Expert}
}

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	switch l {
	case Novice:
		return "NOVICE"
	case Beginner:
		return "BEGINNER"
	case Intermediate:
		return "INTERMEDIATE"
	case Advanced:
		return "ADVANCED"
	case Expert:
		return "EXPERT"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Label returns the display label for a level.
func (l Level) Label() string {
	switch l {
	case Novice:
		return "Novice"
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	default:
		return "Unknown"
	}
}

// Rank returns the integer rank of the level.
func (l Level) Rank() int {
	return int(l)
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Novice && l <= Expert
}

// Next returns the level one step above l, capped at Expert.
func (l Level) Next() Level {
	if l >= Expert {
		return Expert
	}
	return l + 1
}

// Prev returns the level one step below l, floored at Novice.
func (l Level) Prev() Level {
	if l <= Novice {
		return Novice
	}
	return l - 1
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOVICE", "NONE":
		return Novice, nil
	case "BEGINNER":
		return Beginner, nil
	case "INTERMEDIATE":
		return Intermediate, nil
	case "ADVANCED":
		return Advanced, nil
	case "EXPERT":
		return Expert, nil
	default:
		return Novice, fmt.Errorf("unknown skill level %q", s)
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid skill level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level from its name.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Gap returns how many ranks current is below required. Never negative.
func Gap(current, required Level) int {
	if d := required.Rank() - current.Rank(); d > 0 {
		return d
	}
	return 0
}

// SubLevel is the level a goal's implied prerequisites must reach: one step
// below the target, but never below Beginner.
func SubLevel(target Level) Level {
	sub := target.Prev()
	if sub < Beginner {
		return Beginner
	}
	return sub
}

// Normalize returns the case-folded key for a skill name. Surrounding
// whitespace is trimmed and inner runs of whitespace collapse to one space.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
