package model

// Skill is a normalized skill name with an ordinal proficiency level.
// The proficiency scale itself lives in configuration.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SkillSet maps normalized skill name to proficiency level.
type SkillSet map[string]int

func (s SkillSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

type RoleRequirement struct {
	RoleID         string   `json:"role_id" db:"id"`
	Title          string   `json:"title" db:"title"`
	Department     string   `json:"department" db:"department"`
	Description    string   `json:"description" db:"description"`
	RequiredSkills SkillSet `json:"required_skills" db:"-"`
}

type LevelGap struct {
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
}

// SkillGapReport partitions a role's required skills into three
// pairwise disjoint sets covering the full requirement. It is derived
// data, recomputed per request and never persisted.
type SkillGapReport struct {
	RoleID          string              `json:"role_id"`
	RoleTitle       string              `json:"role_title"`
	Missing         SkillSet            `json:"missing"`
	Underleveled    []LevelGap          `json:"underleveled"`
	Matched         SkillSet            `json:"matched"`
	MatchPercentage float64             `json:"match_percentage"`
	MissingByGroup  map[string][]string `json:"missing_by_group,omitempty"`
}
