package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type matchingRepo struct {
	db *pgxpool.Pool
}

func NewMatchingRepository(db *pgxpool.Pool) domain.MatchingRepository {
	return &matchingRepo{db: db}
}

func (r *matchingRepo) AnalyzeSkillMatch(ctx context.Context, postID int64) ([]domain.SkillMatch, error) {
	query := `
		SELECT candidate_id, COALESCE(candidate_name, ''), COALESCE(contact_email, ''), current_title,
		       COALESCE(matched_skills, 0), COALESCE(total_required_skills, 0),
		       COALESCE(match_percentage, 0)::float8
		FROM sp_analyze_candidate_skill_match($1::bigint)`
	rows, err := conn(ctx, r.db).Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("analyze skill match: %w", err)
	}
	defer rows.Close()

	matches := []domain.SkillMatch{}
	for rows.Next() {
		var m domain.SkillMatch
		if err := rows.Scan(
			&m.CandidateID, &m.CandidateName, &m.ContactEmail, &m.CurrentTitle,
			&m.MatchedSkills, &m.TotalRequiredSkills, &m.MatchPercentage,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchingRepo) CandidatesByPosting(ctx context.Context, postID int64) ([]domain.PostingCandidate, error) {
	query := `
		SELECT candidate_id, COALESCE(full_name, ''), COALESCE(email_addr, ''), COALESCE(phone_number, ''),
		       COALESCE(current_title, ''), COALESCE(total_year_of_exp, 0)::float8, applied_at, status
		FROM sp_candidates_by_posting($1::bigint)`
	rows, err := conn(ctx, r.db).Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("candidates by posting: %w", err)
	}
	defer rows.Close()

	candidates := []domain.PostingCandidate{}
	for rows.Next() {
		var c domain.PostingCandidate
		if err := rows.Scan(
			&c.CandidateID, &c.FullName, &c.Email, &c.PhoneNumber,
			&c.CurrentTitle, &c.TotalYearOfExp, &c.AppliedAt, &c.Status,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *matchingRepo) ProfileStrength(ctx context.Context, candidateID int64) (float64, error) {
	var score *float64
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT evaluate_profile_strength($1::bigint)::float8`, candidateID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("profile strength: %w", err)
	}
	if score == nil {
		return 0, domain.ErrNotFound
	}
	return *score, nil
}

// Contact lookups used to resolve rows the skill match could not key by
// candidate. All comparisons ignore case.
const (
	userIDByEmailQuery = `SELECT user_id FROM users WHERE LOWER(email_addr) = LOWER($1) LIMIT 1`
	userIDByNameQuery  = `SELECT user_id FROM users WHERE LOWER(full_name) = LOWER($1) ORDER BY user_id LIMIT 1`

	candidateIDByEmailQuery = `
		SELECT c.candidate_id FROM candidates c
		JOIN users u ON u.user_id = c.candidate_id
		WHERE LOWER(u.email_addr) = LOWER($1) LIMIT 1`
)

func (r *matchingRepo) FindUserIDByEmail(ctx context.Context, email string) (int64, error) {
	return r.lookupID(ctx, userIDByEmailQuery, email)
}

func (r *matchingRepo) FindUserIDByName(ctx context.Context, fullName string) (int64, error) {
	return r.lookupID(ctx, userIDByNameQuery, fullName)
}

func (r *matchingRepo) FindCandidateIDByEmail(ctx context.Context, email string) (int64, error) {
	return r.lookupID(ctx, candidateIDByEmailQuery, email)
}

func (r *matchingRepo) lookupID(ctx context.Context, query, arg string) (int64, error) {
	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("lookup id: %w", err)
	}
	return id, nil
}
