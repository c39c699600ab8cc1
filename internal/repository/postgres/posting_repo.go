package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/datex"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// skillListSeparator joins required skill names inside one column.
const skillListSeparator = ", "

type postingRepo struct {
	db *pgxpool.Pool
}

func NewPostingRepository(db *pgxpool.Pool) domain.PostingRepository {
	return &postingRepo{db: db}
}

func (r *postingRepo) Create(ctx context.Context, p *domain.Posting) (int64, error) {
	query := `SELECT post_id, message FROM sp_create_posting(
		$1::varchar, $2::numeric, $3::numeric, $4::varchar, $5::varchar, $6::varchar,
		$7::date, $8::varchar, $9::text, $10::bigint, $11::bigint)`

	var (
		id      int64
		message string
	)
	err := conn(ctx, r.db).QueryRow(ctx, query,
		p.PostName, p.SalaryMin, p.SalaryMax, p.Position, p.Location, p.WorkForm,
		p.EndDate.Ptr(), p.Domain, p.PostDesc, p.EmployerID, p.ModStaffID,
	).Scan(&id, &message)
	if err != nil {
		return 0, fmt.Errorf("create posting: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *postingRepo) Update(ctx context.Context, id int64, in domain.UpdatePostingInput) error {
	query := `SELECT message FROM sp_update_posting($1::bigint, $2::text, $3::numeric, $4::numeric, $5::date)`
	var message string
	err := conn(ctx, r.db).QueryRow(ctx, query,
		id, in.PostDesc, in.SalaryMin.Value, in.SalaryMax.Value, in.EndDate.Ptr(),
	).Scan(&message)
	if err != nil {
		if isNoDataFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update posting: %w", err)
	}
	return nil
}

func (r *postingRepo) Delete(ctx context.Context, id int64) error {
	var message string
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT message FROM sp_delete_posting($1::bigint)`, id).Scan(&message)
	if err != nil {
		if isNoDataFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete posting: %w", err)
	}
	return nil
}

const postingSelect = `
	SELECT
		p.post_id, p.post_name, p.salary_min::float8, p.salary_max::float8, p.position, p.location,
		p.work_form, p.end_date, p.domain, p.post_desc, p.employer_id, p.mod_staff_id, p.created_at,
		e.rep_company_name, co.company_name,
		(SELECT string_agg(s.skill_name, ', ' ORDER BY s.skill_name)
		   FROM require_skills rs JOIN skills s ON s.skill_id = rs.skill_id
		  WHERE rs.post_id = p.post_id) AS required_skills
	FROM postings p
	LEFT JOIN employers e ON e.employer_id = p.employer_id
	LEFT JOIN companies co ON co.company_id = e.company_id`

func scanPosting(row pgx.Row) (*domain.Posting, error) {
	var (
		p       domain.Posting
		endDate *time.Time
		skills  *string
	)
	err := row.Scan(
		&p.ID, &p.PostName, &p.SalaryMin, &p.SalaryMax, &p.Position, &p.Location,
		&p.WorkForm, &endDate, &p.Domain, &p.PostDesc, &p.EmployerID, &p.ModStaffID, &p.CreatedAt,
		&p.RepCompanyName, &p.CompanyName, &skills,
	)
	if err != nil {
		return nil, err
	}
	p.EndDate = datex.Normalize(endDate)
	p.RequiredSkills = []string{}
	if skills != nil && *skills != "" {
		p.RequiredSkills = strings.Split(*skills, skillListSeparator)
	}
	return &p, nil
}

func (r *postingRepo) GetByID(ctx context.Context, id int64) (*domain.Posting, error) {
	p, err := scanPosting(conn(ctx, r.db).QueryRow(ctx, postingSelect+` WHERE p.post_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get posting: %w", err)
	}
	return p, nil
}

func (r *postingRepo) List(ctx context.Context) ([]domain.Posting, error) {
	rows, err := conn(ctx, r.db).Query(ctx, postingSelect+` ORDER BY p.created_at DESC, p.post_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	postings := []domain.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}

func (r *postingRepo) AttachRequiredSkills(ctx context.Context, postID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO require_skills (post_id, skill_id)
		SELECT $1, s.id FROM unnest($2::bigint[]) AS s(id)
		ON CONFLICT (post_id, skill_id) DO NOTHING`
	if _, err := conn(ctx, r.db).Exec(ctx, query, postID, pq.Array(skillIDs)); err != nil {
		return fmt.Errorf("attach required skills: %w", err)
	}
	return nil
}

func (r *postingRepo) ModeratorExists(ctx context.Context, staffID int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM moderator_staff WHERE staff_id = $1)`, staffID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check moderator: %w", err)
	}
	return exists, nil
}

func (r *postingRepo) DefaultModeratorID(ctx context.Context) (*int64, error) {
	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT staff_id FROM moderator_staff ORDER BY staff_id LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("default moderator: %w", err)
	}
	return &id, nil
}

func (r *postingRepo) Summaries(ctx context.Context) ([]domain.PostingSummary, error) {
	query := `
		SELECT p.post_id, p.post_name, p.end_date, COUNT(a.apply_id)
		FROM postings p
		LEFT JOIN applies a ON a.post_id = p.post_id
		GROUP BY p.post_id, p.post_name, p.end_date
		ORDER BY COUNT(a.apply_id) DESC, p.post_id`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("posting summaries: %w", err)
	}
	defer rows.Close()

	summaries := []domain.PostingSummary{}
	for rows.Next() {
		var (
			s       domain.PostingSummary
			endDate *time.Time
		)
		if err := rows.Scan(&s.ID, &s.PostName, &endDate, &s.Applicants); err != nil {
			return nil, err
		}
		s.EndDate = datex.Normalize(endDate)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// TopApplicantSkills counts skills across candidates that applied to at
// least one posting.
func (r *postingRepo) TopApplicantSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	query := `
		SELECT s.skill_id, s.skill_name, COUNT(DISTINCT h.candidate_id)
		FROM has_skills h
		JOIN skills s ON s.skill_id = h.skill_id
		WHERE EXISTS (SELECT 1 FROM applies a WHERE a.candidate_id = h.candidate_id)
		GROUP BY s.skill_id, s.skill_name
		ORDER BY 3 DESC, s.skill_name
		LIMIT $1`
	rows, err := conn(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top applicant skills: %w", err)
	}
	defer rows.Close()

	counts := []domain.SkillCount{}
	for rows.Next() {
		var c domain.SkillCount
		if err := rows.Scan(&c.SkillID, &c.SkillName, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
