package model

type MentorProfile struct {
	MentorID     string   `json:"mentor_id" db:"id"`
	Name         string   `json:"name" db:"name"`
	CurrentRole  string   `json:"current_role" db:"current_role"`
	Expertise    SkillSet `json:"expertise" db:"-"`
	Domains      []string `json:"domains" db:"-"`
	Availability bool     `json:"availability" db:"availability"`
}

type MatchFactor struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// MatchScore is a ranked mentor with its total score in [0,1] and the
// ordered factor contributions that produced it.
type MatchScore struct {
	MentorID  string        `json:"mentor_id"`
	Name      string        `json:"name"`
	Score     float64       `json:"score"`
	Rationale []MatchFactor `json:"rationale"`
}
