package repo

import (
	"context"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/personapath/personapath/internal/model"
)

type UserSkillRepo struct {
	db *sqlx.DB
}

func NewUserSkillRepo(db *sqlx.DB) *UserSkillRepo {
	return &UserSkillRepo{db: db}
}

// Replace swaps the stored profile skills for a user in one shot.
func (r *UserSkillRepo) Replace(ctx context.Context, userID string, skills model.SkillSet) error {
	where := map[string]interface{}{"user_id": userID}
	delStr, delArgs, err := builder.BuildDelete("user_skills", where)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, delStr, delArgs...); err != nil {
		return err
	}
	if len(skills) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(skills))
	for name, level := range skills {
		rows = append(rows, map[string]interface{}{
			"user_id": userID,
			"name":    name,
			"level":   level,
		})
	}
	insStr, insArgs, err := builder.BuildInsert("user_skills", rows)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insStr, insArgs...)
	return err
}

func (r *UserSkillRepo) ListByUser(ctx context.Context, userID string) (model.SkillSet, error) {
	var rows []model.UserSkill
	if err := r.db.SelectContext(ctx, &rows, `SELECT user_id, name, level FROM user_skills WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	skills := make(model.SkillSet, len(rows))
	for _, row := range rows {
		skills[row.Name] = row.Level
	}
	return skills, nil
}
