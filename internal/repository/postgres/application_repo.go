package postgres

import (
	"context"
	"fmt"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique (candidate_id, post_id)
// constraint is the final arbiter of duplicates.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Apply) error {
	query := `
		INSERT INTO applies (candidate_id, post_id, status)
		VALUES ($1, $2, $3)
		RETURNING apply_id, applied_at`

	if app.Status == "" {
		app.Status = domain.ApplyStatusPending
	}

	err := conn(ctx, r.db).QueryRow(ctx, query, app.CandidateID, app.PostID, app.Status).
		Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("create apply: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create apply: %w", err)
	}
	return nil
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, postID int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applies WHERE candidate_id = $1 AND post_id = $2)`,
		candidateID, postID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check apply: %w", err)
	}
	return exists, nil
}

// ListByPosting retrieves all applications for a posting with joined candidate data
func (r *applicationRepo) ListByPosting(ctx context.Context, postID int64) ([]domain.Applicant, error) {
	query := `
		SELECT
			a.apply_id, a.candidate_id, a.post_id, a.applied_at, a.status,
			COALESCE(u.full_name, ''), COALESCE(u.email_addr, ''), COALESCE(u.phone_number, ''),
			COALESCE(c.current_title, ''), COALESCE(c.total_year_of_exp, 0)::float8
		FROM applies a
		LEFT JOIN candidates c ON c.candidate_id = a.candidate_id
		LEFT JOIN users u ON u.user_id = a.candidate_id
		WHERE a.post_id = $1
		ORDER BY a.applied_at DESC, a.apply_id DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list applies: %w", err)
	}
	defer rows.Close()

	applicants := []domain.Applicant{}
	for rows.Next() {
		var a domain.Applicant
		if err := rows.Scan(
			&a.ID, &a.CandidateID, &a.PostID, &a.AppliedAt, &a.Status,
			&a.FullName, &a.Email, &a.PhoneNumber, &a.CurrentTitle, &a.TotalYearOfExp,
		); err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}
