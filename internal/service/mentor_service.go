package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
)

type MentorService struct {
	mentors    *repo.MentorRepo
	normalizer *SkillNormalizer
	cfg        config.MentorMatch
}

func NewMentorService(mentors *repo.MentorRepo, normalizer *SkillNormalizer, cfg config.MentorMatch) *MentorService {
	return &MentorService{mentors: mentors, normalizer: normalizer, cfg: cfg}
}

// Rank scores every mentor against the seeker's goals and domains and
// returns them best first. The score is a weighted sum of independent
// factors, each in [0,1], divided by the weight total, so it is
// monotonic in every factor and itself stays in [0,1]. Zero domain
// overlap is soft-penalized unless require_domain_overlap is set, in
// which case such mentors are dropped. Equal scores order by mentor
// id, so identical inputs always produce identical output.
func (s *MentorService) Rank(ctx context.Context, goals model.SkillSet, domains []string, limit int) ([]model.MatchScore, error) {
	mentors, err := s.mentors.List(ctx)
	if err != nil {
		return nil, err
	}
	normGoals := s.normalizer.NormalizeSet(goals)
	normDomains := foldDomains(domains)

	scores := make([]model.MatchScore, 0, len(mentors))
	for _, mentor := range mentors {
		match, ok := s.score(&mentor, normGoals, normDomains)
		if !ok {
			continue
		}
		scores = append(scores, match)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].MentorID < scores[j].MentorID
	})
	if limit > 0 && limit < len(scores) {
		scores = scores[:limit]
	}
	return scores, nil
}

func (s *MentorService) score(mentor *model.MentorProfile, goals model.SkillSet, domains map[string]struct{}) (model.MatchScore, bool) {
	expertise := s.normalizer.NormalizeSet(mentor.Expertise)

	skillOverlap := overlapFraction(goals, expertise)
	domainOverlap := domainFraction(domains, mentor.Domains)
	availability := 0.0
	if mentor.Availability {
		availability = 1.0
	}

	if s.cfg.RequireDomainOverlap && len(domains) > 0 && domainOverlap == 0 {
		return model.MatchScore{}, false
	}

	factors := []model.MatchFactor{
		{Name: "skill_overlap", Value: skillOverlap, Weight: s.cfg.SkillOverlapWeight},
		{Name: "domain_overlap", Value: domainOverlap, Weight: s.cfg.DomainOverlapWeight},
		{Name: "availability", Value: availability, Weight: s.cfg.AvailabilityWeight},
	}
	var total, weightSum float64
	for _, f := range factors {
		total += f.Value * f.Weight
		weightSum += f.Weight
	}
	score := 0.0
	if weightSum > 0 {
		score = total / weightSum
	}
	if s.cfg.ExplorationNoise > 0 {
		score += rand.Float64() * s.cfg.ExplorationNoise
		if score > 1 {
			score = 1
		}
	}
	return model.MatchScore{
		MentorID:  mentor.MentorID,
		Name:      mentor.Name,
		Score:     score,
		Rationale: factors,
	}, true
}

func overlapFraction(goals, expertise model.SkillSet) float64 {
	if len(goals) == 0 {
		return 0
	}
	matched := 0
	for name := range goals {
		if _, ok := expertise[name]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(goals))
}

func domainFraction(wanted map[string]struct{}, mentorDomains []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, domain := range mentorDomains {
		if _, ok := wanted[foldDomain(domain)]; ok {
			matched++
		}
	}
	if matched > len(wanted) {
		matched = len(wanted)
	}
	return float64(matched) / float64(len(wanted))
}

func foldDomains(domains []string) map[string]struct{} {
	out := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		folded := foldDomain(domain)
		if folded == "" {
			continue
		}
		out[folded] = struct{}{}
	}
	return out
}

func foldDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
