package service

import (
	"context"
	"sort"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
)

type SkillGapService struct {
	roles      *repo.RoleRepo
	normalizer *SkillNormalizer
}

func NewSkillGapService(roles *repo.RoleRepo, normalizer *SkillNormalizer) *SkillGapService {
	return &SkillGapService{roles: roles, normalizer: normalizer}
}

// Analyze compares a user's skills against one role's requirements.
// The comparison is one-directional: skills the user has beyond the
// requirement are not reported. The three result partitions are
// pairwise disjoint and together cover the required set exactly.
func (s *SkillGapService) Analyze(ctx context.Context, skills model.SkillSet, roleID string) (*model.SkillGapReport, error) {
	role, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return s.analyzeAgainst(skills, role), nil
}

func (s *SkillGapService) analyzeAgainst(skills model.SkillSet, role *model.RoleRequirement) *model.SkillGapReport {
	current := s.normalizer.NormalizeSet(skills)
	required := s.normalizer.NormalizeSet(role.RequiredSkills)

	report := &model.SkillGapReport{
		RoleID:    role.RoleID,
		RoleTitle: role.Title,
		Missing:   make(model.SkillSet),
		Matched:   make(model.SkillSet),
	}
	for name, requiredLevel := range required {
		currentLevel, ok := current[name]
		switch {
		case !ok:
			report.Missing[name] = requiredLevel
		case currentLevel < requiredLevel:
			report.Underleveled = append(report.Underleveled, model.LevelGap{
				Name:     name,
				Current:  currentLevel,
				Required: requiredLevel,
			})
		default:
			report.Matched[name] = requiredLevel
		}
	}
	sort.Slice(report.Underleveled, func(i, j int) bool {
		return report.Underleveled[i].Name < report.Underleveled[j].Name
	})

	if len(required) > 0 {
		report.MatchPercentage = float64(len(report.Matched)) / float64(len(required)) * 100
	}
	if len(report.Missing) > 0 {
		report.MissingByGroup = make(map[string][]string)
		for name := range report.Missing {
			group := s.normalizer.GroupOf(name)
			report.MissingByGroup[group] = append(report.MissingByGroup[group], name)
		}
		for group := range report.MissingByGroup {
			sort.Strings(report.MissingByGroup[group])
		}
	}
	return report
}
