package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/personapath/personapath/internal/config"
	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/repo"
)

func seedMentors(t *testing.T, mentors *repo.MentorRepo) {
	t.Helper()
	for _, mentor := range []model.MentorProfile{
		{
			MentorID:  "m1",
			Name:      "Robin",
			Expertise: model.SkillSet{"go": 4, "sql": 3},
			Domains:   []string{"data"},
		},
		{
			MentorID:  "m2",
			Name:      "Sam",
			Expertise: model.SkillSet{"go": 4},
			Domains:   []string{"data"},
		},
		{
			MentorID:  "m3",
			Name:      "Jo",
			Expertise: model.SkillSet{"painting": 2},
			Domains:   []string{"art"},
		},
	} {
		mentor := mentor
		require.NoError(t, mentors.Save(context.Background(), &mentor))
	}
}

func TestRankOrdersBestFirst(t *testing.T) {
	db := openTestDB(t)
	mentorRepo := repo.NewMentorRepo(db)
	seedMentors(t, mentorRepo)

	svc := NewMentorService(mentorRepo, testNormalizer(), config.MentorMatch{
		SkillOverlapWeight:  0.6,
		DomainOverlapWeight: 0.4,
	})

	scores, err := svc.Rank(context.Background(), model.SkillSet{"Golang": 3, "SQL": 2}, []string{"data"}, 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	require.Equal(t, "m1", scores[0].MentorID)
	require.Equal(t, "m2", scores[1].MentorID)
	require.Equal(t, "m3", scores[2].MentorID)
	for i := 1; i < len(scores); i++ {
		require.LessOrEqual(t, scores[i].Score, scores[i-1].Score)
	}
}

func TestRankTieBreaksByMentorID(t *testing.T) {
	db := openTestDB(t)
	mentorRepo := repo.NewMentorRepo(db)
	for _, id := range []string{"m9", "m2", "m5"} {
		require.NoError(t, mentorRepo.Save(context.Background(), &model.MentorProfile{
			MentorID:  id,
			Name:      "Mentor " + id,
			Expertise: model.SkillSet{"go": 4},
		}))
	}

	svc := NewMentorService(mentorRepo, testNormalizer(), config.MentorMatch{SkillOverlapWeight: 1})
	scores, err := svc.Rank(context.Background(), model.SkillSet{"go": 3}, nil, 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	require.Equal(t, "m2", scores[0].MentorID)
	require.Equal(t, "m5", scores[1].MentorID)
	require.Equal(t, "m9", scores[2].MentorID)

	again, err := svc.Rank(context.Background(), model.SkillSet{"go": 3}, nil, 10)
	require.NoError(t, err)
	require.Equal(t, scores, again)
}

func TestRankHonorsLimitAndHardFilter(t *testing.T) {
	db := openTestDB(t)
	mentorRepo := repo.NewMentorRepo(db)
	seedMentors(t, mentorRepo)

	svc := NewMentorService(mentorRepo, testNormalizer(), config.MentorMatch{
		SkillOverlapWeight:   0.6,
		DomainOverlapWeight:  0.4,
		RequireDomainOverlap: true,
	})

	scores, err := svc.Rank(context.Background(), model.SkillSet{"go": 3}, []string{"data"}, 1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, "m1", scores[0].MentorID)
}

func TestSkillsAlongPath(t *testing.T) {
	db := openTestDB(t)
	roleRepo := repo.NewRoleRepo(db)
	require.NoError(t, roleRepo.Save(context.Background(), &model.RoleRequirement{
		RoleID: "r1", Title: "Data Engineer", RequiredSkills: model.SkillSet{"sql": 3},
	}))
	require.NoError(t, roleRepo.Save(context.Background(), &model.RoleRequirement{
		RoleID: "r2", Title: "Analytics Engineer", RequiredSkills: model.SkillSet{"dbt": 2},
	}))

	svc := NewCareerService(roleRepo, testCareerPaths())
	skills, err := svc.SkillsAlongPath(context.Background(), []string{"data analyst", "analytics engineer", "data engineer"})
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.Equal(t, model.SkillSet{"dbt": 2}, skills["analytics engineer"])
	require.Equal(t, model.SkillSet{"sql": 3}, skills["data engineer"])
}
