package service

import (
	"strings"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
)

// SkillNormalizer folds case and collapses synonyms ("JS" and
// "JavaScript" become one skill) using the table from configuration.
// All skill comparison in the engine goes through it, so inputs from
// profiles, roles and mentors land in the same namespace.
type SkillNormalizer struct {
	synonyms map[string]string
	groups   map[string][]string
	maxLevel int
}

func NewSkillNormalizer(cfg config.SkillsConfig) *SkillNormalizer {
	synonyms := make(map[string]string, len(cfg.Synonyms))
	for alias, canonical := range cfg.Synonyms {
		synonyms[foldSkill(alias)] = foldSkill(canonical)
	}
	groups := make(map[string][]string, len(cfg.Groups))
	for group, names := range cfg.Groups {
		folded := make([]string, 0, len(names))
		for _, name := range names {
			folded = append(folded, foldSkill(name))
		}
		groups[group] = folded
	}
	return &SkillNormalizer{
		synonyms: synonyms,
		groups:   groups,
		maxLevel: len(cfg.ProficiencyScale),
	}
}

func (n *SkillNormalizer) Normalize(name string) string {
	folded := foldSkill(name)
	if canonical, ok := n.synonyms[folded]; ok {
		return canonical
	}
	return folded
}

// NormalizeSet remaps a skill set into canonical names. When two
// aliases of one skill both appear, the higher level wins.
func (n *SkillNormalizer) NormalizeSet(skills model.SkillSet) model.SkillSet {
	out := make(model.SkillSet, len(skills))
	for name, level := range skills {
		canonical := n.Normalize(name)
		if canonical == "" {
			continue
		}
		if level < 0 {
			level = 0
		}
		if n.maxLevel > 0 && level > n.maxLevel {
			level = n.maxLevel
		}
		if existing, ok := out[canonical]; !ok || level > existing {
			out[canonical] = level
		}
	}
	return out
}

// GroupOf reports the configured category for a skill, or "Other".
func (n *SkillNormalizer) GroupOf(name string) string {
	folded := n.Normalize(name)
	for group, names := range n.groups {
		for _, candidate := range names {
			if candidate == folded {
				return group
			}
		}
	}
	return "Other"
}

func foldSkill(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
