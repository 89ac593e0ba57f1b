package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/personapath/personapath/internal/model"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
)

type MentorRepo struct {
	db *sqlx.DB
}

func NewMentorRepo(db *sqlx.DB) *MentorRepo {
	return &MentorRepo{db: db}
}

type mentorRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	CurrentRole  string `db:"current_role"`
	Expertise    []byte `db:"expertise"`
	Domains      []byte `db:"domains"`
	Availability bool   `db:"availability"`
}

func (row mentorRow) toModel() (*model.MentorProfile, error) {
	mentor := &model.MentorProfile{
		MentorID:     row.ID,
		Name:         row.Name,
		CurrentRole:  row.CurrentRole,
		Availability: row.Availability,
	}
	if len(row.Expertise) > 0 {
		if err := json.Unmarshal(row.Expertise, &mentor.Expertise); err != nil {
			return nil, err
		}
	}
	if len(row.Domains) > 0 {
		if err := json.Unmarshal(row.Domains, &mentor.Domains); err != nil {
			return nil, err
		}
	}
	return mentor, nil
}

func (r *MentorRepo) Get(ctx context.Context, mentorID string) (*model.MentorProfile, error) {
	var row mentorRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, current_role, expertise, domains, availability FROM mentors WHERE id = ?`, mentorID)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrUnknownMentor
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (r *MentorRepo) List(ctx context.Context) ([]model.MentorProfile, error) {
	var rows []mentorRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, current_role, expertise, domains, availability FROM mentors ORDER BY id`); err != nil {
		return nil, err
	}
	mentors := make([]model.MentorProfile, 0, len(rows))
	for _, row := range rows {
		mentor, err := row.toModel()
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, *mentor)
	}
	return mentors, nil
}

func (r *MentorRepo) Save(ctx context.Context, mentor *model.MentorProfile) error {
	expertise, err := json.Marshal(mentor.Expertise)
	if err != nil {
		return err
	}
	domains, err := json.Marshal(mentor.Domains)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		REPLACE INTO mentors (id, name, current_role, expertise, domains, availability)
		VALUES (?, ?, ?, ?, ?, ?)`,
		mentor.MentorID, mentor.Name, mentor.CurrentRole, expertise, domains, mentor.Availability,
	)
	return err
}
