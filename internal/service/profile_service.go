package service

import (
	"context"

	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
	"github.com/personapath/personapath/internal/repo"
)

type ProfileService struct {
	skills     *repo.UserSkillRepo
	normalizer *SkillNormalizer
}

func NewProfileService(skills *repo.UserSkillRepo, normalizer *SkillNormalizer) *ProfileService {
	return &ProfileService{skills: skills, normalizer: normalizer}
}

// UpdateSkills stores the user's profile skills in canonical form.
func (s *ProfileService) UpdateSkills(ctx context.Context, userID string, skills model.SkillSet) (model.SkillSet, error) {
	if len(skills) == 0 {
		return nil, appErr.ErrInvalid
	}
	normalized := s.normalizer.NormalizeSet(skills)
	if err := s.skills.Replace(ctx, userID, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *ProfileService) GetSkills(ctx context.Context, userID string) (model.SkillSet, error) {
	return s.skills.ListByUser(ctx, userID)
}
