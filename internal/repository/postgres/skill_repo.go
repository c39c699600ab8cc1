package postgres

import (
	"context"
	"fmt"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT skill_id, skill_name, category FROM skills ORDER BY category, skill_name`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()
	return scanSkills(rows)
}
