package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

type RoleRepo struct {
	db *sqlx.DB
}

func NewRoleRepo(db *sqlx.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

type roleRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Department  string `db:"department"`
	Description string `db:"description"`
	Skills      []byte `db:"skills"`
}

func (row roleRow) toModel() (*model.RoleRequirement, error) {
	role := &model.RoleRequirement{
		RoleID:      row.ID,
		Title:       row.Title,
		Department:  row.Department,
		Description: row.Description,
	}
	if len(row.Skills) > 0 {
		if err := json.Unmarshal(row.Skills, &role.RequiredSkills); err != nil {
			return nil, err
		}
	}
	return role, nil
}

func (r *RoleRepo) Get(ctx context.Context, roleID string) (*model.RoleRequirement, error) {
	var row roleRow
	err := r.db.GetContext(ctx, &row, `SELECT id, title, department, description, skills FROM job_roles WHERE id = ?`, roleID)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrUnknownRole
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (r *RoleRepo) List(ctx context.Context) ([]model.RoleRequirement, error) {
	var rows []roleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, title, department, description, skills FROM job_roles ORDER BY title`); err != nil {
		return nil, err
	}
	roles := make([]model.RoleRequirement, 0, len(rows))
	for _, row := range rows {
		role, err := row.toModel()
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *RoleRepo) Save(ctx context.Context, role *model.RoleRequirement) error {
	skills, err := json.Marshal(role.RequiredSkills)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		REPLACE INTO job_roles (id, title, department, description, skills)
		VALUES (?, ?, ?, ?, ?)`,
		role.RoleID, role.Title, role.Department, role.Description, skills,
	)
	return err
}
