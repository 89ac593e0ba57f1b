package service

import (
	"context"
	"strings"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
)

// monthsPerStep is the planning heuristic for one role transition.
const monthsPerStep = 18

type RoadmapStep struct {
	From           string `json:"from"`
	To             string `json:"to"`
	DurationMonths int    `json:"duration_months"`
}

type Roadmap struct {
	CurrentRole    string        `json:"current_role"`
	TargetRole     string        `json:"target_role"`
	Path           []string      `json:"path"`
	Steps          []RoadmapStep `json:"steps"`
	TimelineMonths int           `json:"timeline_months"`
	Direct         bool          `json:"direct"`
}

type CareerService struct {
	roles *repo.RoleRepo
	paths map[string][]string
}

func NewCareerService(roles *repo.RoleRepo, paths map[string][]string) *CareerService {
	folded := make(map[string][]string, len(paths))
	for from, targets := range paths {
		key := foldRole(from)
		for _, target := range targets {
			folded[key] = append(folded[key], foldRole(target))
		}
	}
	return &CareerService{roles: roles, paths: folded}
}

// Roadmap searches the configured career-path graph for the shortest
// progression from the current role to the target. With no configured
// route the transition is planned as a single direct step.
func (s *CareerService) Roadmap(ctx context.Context, currentRole, targetRole string) (*Roadmap, error) {
	_ = ctx
	current := foldRole(currentRole)
	target := foldRole(targetRole)

	path := s.bfs(current, target)
	direct := false
	if path == nil {
		path = []string{current, target}
		direct = true
	}

	roadmap := &Roadmap{
		CurrentRole: currentRole,
		TargetRole:  targetRole,
		Path:        path,
		Direct:      direct,
	}
	for i := 0; i+1 < len(path); i++ {
		roadmap.Steps = append(roadmap.Steps, RoadmapStep{
			From:           path[i],
			To:             path[i+1],
			DurationMonths: monthsPerStep,
		})
	}
	roadmap.TimelineMonths = len(roadmap.Steps) * monthsPerStep
	return roadmap, nil
}

// SkillsAlongPath aggregates the stored requirements of every role on
// the path that matches a known job role title.
func (s *CareerService) SkillsAlongPath(ctx context.Context, path []string) (map[string]model.SkillSet, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]model.SkillSet, len(roles))
	for _, role := range roles {
		byTitle[foldRole(role.Title)] = role.RequiredSkills
	}
	out := make(map[string]model.SkillSet)
	for _, step := range path {
		if skills, ok := byTitle[foldRole(step)]; ok {
			out[step] = skills
		}
	}
	return out, nil
}

func (s *CareerService) bfs(start, end string) []string {
	if start == end {
		return []string{start}
	}
	visited := map[string]bool{start: true}
	queue := [][]string{{start}}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		for _, next := range s.paths[path[len(path)-1]] {
			if visited[next] {
				continue
			}
			extended := append(append([]string{}, path...), next)
			if next == end {
				return extended
			}
			visited[next] = true
			queue = append(queue, extended)
		}
	}
	return nil
}

func foldRole(role string) string {
	return strings.ToLower(strings.Join(strings.Fields(role), " "))
}
