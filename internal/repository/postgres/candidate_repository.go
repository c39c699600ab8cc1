package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/datex"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (candidate_id, current_title, self_intro, total_year_of_exp)
              VALUES ($1, $2, $3, $4)`
	_, err := conn(ctx, r.db).Exec(ctx, query, c.ID, c.CurrentTitle, c.SelfIntro, c.TotalYearOfExp)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("create candidate: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidates WHERE candidate_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check candidate: %w", err)
	}
	return exists, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `
		SELECT c.candidate_id, COALESCE(u.full_name, ''), COALESCE(u.email_addr, ''),
		       COALESCE(u.phone_number, ''), u.address,
		       c.current_title, c.self_intro, c.total_year_of_exp::float8
		FROM candidates c
		LEFT JOIN users u ON u.user_id = c.candidate_id
		WHERE c.candidate_id = $1`

	var c domain.Candidate
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.Address,
		&c.CurrentTitle, &c.SelfIntro, &c.TotalYearOfExp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return &c, nil
}

func (r *candidateRepository) UpdateBasics(ctx context.Context, id int64, in domain.UpdateCandidateInput) error {
	query := `UPDATE candidates SET current_title = $2, self_intro = $3, total_year_of_exp = $4
              WHERE candidate_id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query, id, in.CurrentTitle, in.SelfIntro, in.TotalYearOfExp)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// =================================================================================================
// Child collections (delete all -> insert)
// =================================================================================================

func (r *candidateRepository) ReplaceExperiences(ctx context.Context, candidateID int64, rows []domain.Experience) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM experiences WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete experiences: %w", err)
	}
	insert := `
		INSERT INTO experiences (candidate_id, exp_id, job_title, company_name, start_date, end_date, exp_desc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, e := range rows {
		_, err := q.Exec(ctx, insert, candidateID, e.ExpID, e.JobTitle, e.CompanyName,
			e.StartDate.Ptr(), e.EndDate.Ptr(), e.Description)
		if err != nil {
			return fmt.Errorf("failed to insert experience %d: %w", e.ExpID, err)
		}
	}
	return nil
}

func (r *candidateRepository) ReplaceEducation(ctx context.Context, candidateID int64, rows []domain.Education) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM education WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}
	insert := `
		INSERT INTO education (candidate_id, edu_id, school_name, major, degree, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, e := range rows {
		_, err := q.Exec(ctx, insert, candidateID, e.EduID, e.SchoolName, e.Major, e.Degree,
			e.StartDate.Ptr(), e.EndDate.Ptr())
		if err != nil {
			return fmt.Errorf("failed to insert education %d: %w", e.EduID, err)
		}
	}
	return nil
}

func (r *candidateRepository) ReplaceCertificates(ctx context.Context, candidateID int64, rows []domain.Certificate) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM certificates WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete certificates: %w", err)
	}
	insert := `
		INSERT INTO certificates (candidate_id, cert_id, cert_name, organization, issue_date, cert_url)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, c := range rows {
		_, err := q.Exec(ctx, insert, candidateID, c.CertID, c.CertName, c.Organization, c.IssueDate.Ptr(), c.CertURL)
		if err != nil {
			return fmt.Errorf("failed to insert certificate %d: %w", c.CertID, err)
		}
	}
	return nil
}

func (r *candidateRepository) ReplaceForeignLanguages(ctx context.Context, candidateID int64, rows []domain.ForeignLanguage) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM foreign_languages WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete languages: %w", err)
	}
	insert := `INSERT INTO foreign_languages (candidate_id, lang_id, language, level) VALUES ($1, $2, $3, $4)`
	for _, l := range rows {
		if _, err := q.Exec(ctx, insert, candidateID, l.LangID, l.Language, l.Level); err != nil {
			return fmt.Errorf("failed to insert language %d: %w", l.LangID, err)
		}
	}
	return nil
}

func (r *candidateRepository) ReplaceCVs(ctx context.Context, candidateID int64, rows []domain.CV) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM cvs WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to delete cvs: %w", err)
	}
	insert := `INSERT INTO cvs (candidate_id, cv_id, cv_name, cv_url, is_public) VALUES ($1, $2, $3, $4, $5)`
	for _, cv := range rows {
		if _, err := q.Exec(ctx, insert, candidateID, cv.CvID, cv.CvName, cv.CvURL, cv.IsPublic); err != nil {
			return fmt.Errorf("failed to insert cv %d: %w", cv.CvID, err)
		}
	}
	return nil
}

// LinkSkills is idempotent: links that already exist are skipped by the
// primary key, every other failure is returned.
func (r *candidateRepository) LinkSkills(ctx context.Context, candidateID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO has_skills (candidate_id, skill_id)
		SELECT $1, s.id FROM unnest($2::bigint[]) AS s(id)
		ON CONFLICT (candidate_id, skill_id) DO NOTHING`
	if _, err := conn(ctx, r.db).Exec(ctx, query, candidateID, pq.Array(skillIDs)); err != nil {
		return fmt.Errorf("failed to link skills: %w", err)
	}
	return nil
}

// =================================================================================================
// Reads
// =================================================================================================

func (r *candidateRepository) ListExperiences(ctx context.Context, candidateID int64) ([]domain.Experience, error) {
	query := `SELECT exp_id, job_title, company_name, start_date, end_date, exp_desc
	          FROM experiences WHERE candidate_id = $1 ORDER BY end_date DESC NULLS FIRST, exp_id`
	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch experiences: %w", err)
	}
	defer rows.Close()

	result := []domain.Experience{}
	for rows.Next() {
		e := domain.Experience{CandidateID: candidateID}
		var start, end *time.Time
		if err := rows.Scan(&e.ExpID, &e.JobTitle, &e.CompanyName, &start, &end, &e.Description); err != nil {
			return nil, err
		}
		e.StartDate, e.EndDate = datex.Normalize(start), datex.Normalize(end)
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListEducation(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	query := `SELECT edu_id, school_name, major, degree, start_date, end_date
	          FROM education WHERE candidate_id = $1 ORDER BY end_date DESC NULLS FIRST, edu_id`
	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch education: %w", err)
	}
	defer rows.Close()

	result := []domain.Education{}
	for rows.Next() {
		e := domain.Education{CandidateID: candidateID}
		var start, end *time.Time
		if err := rows.Scan(&e.EduID, &e.SchoolName, &e.Major, &e.Degree, &start, &end); err != nil {
			return nil, err
		}
		e.StartDate, e.EndDate = datex.Normalize(start), datex.Normalize(end)
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListCertificates(ctx context.Context, candidateID int64) ([]domain.Certificate, error) {
	query := `SELECT cert_id, cert_name, organization, issue_date, cert_url
	          FROM certificates WHERE candidate_id = $1 ORDER BY cert_id`
	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer rows.Close()

	result := []domain.Certificate{}
	for rows.Next() {
		c := domain.Certificate{CandidateID: candidateID}
		var issued *time.Time
		if err := rows.Scan(&c.CertID, &c.CertName, &c.Organization, &issued, &c.CertURL); err != nil {
			return nil, err
		}
		c.IssueDate = datex.Normalize(issued)
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListForeignLanguages(ctx context.Context, candidateID int64) ([]domain.ForeignLanguage, error) {
	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT lang_id, language, level FROM foreign_languages WHERE candidate_id = $1 ORDER BY lang_id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages: %w", err)
	}
	defer rows.Close()

	result := []domain.ForeignLanguage{}
	for rows.Next() {
		l := domain.ForeignLanguage{CandidateID: candidateID}
		if err := rows.Scan(&l.LangID, &l.Language, &l.Level); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListCVs(ctx context.Context, candidateID int64, employerID *int64) ([]domain.CV, error) {
	query := `SELECT cv_id, cv_name, cv_url, is_public FROM cvs WHERE candidate_id = $1 ORDER BY cv_id`
	args := []any{candidateID}
	if employerID != nil {
		query = `
			SELECT cv.cv_id, cv.cv_name, cv.cv_url, cv.is_public
			FROM cvs cv
			LEFT JOIN cv_access_permissions p
			       ON p.candidate_id = cv.candidate_id AND p.cv_id = cv.cv_id AND p.employer_id = $2
			WHERE cv.candidate_id = $1 AND (cv.is_public OR p.cv_id IS NOT NULL)
			ORDER BY cv.cv_id`
		args = append(args, *employerID)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cvs: %w", err)
	}
	defer rows.Close()

	result := []domain.CV{}
	for rows.Next() {
		cv := domain.CV{CandidateID: candidateID}
		if err := rows.Scan(&cv.CvID, &cv.CvName, &cv.CvURL, &cv.IsPublic); err != nil {
			return nil, err
		}
		result = append(result, cv)
	}
	return result, rows.Err()
}

func (r *candidateRepository) ListSkills(ctx context.Context, candidateID int64) ([]domain.Skill, error) {
	query := `
		SELECT s.skill_id, s.skill_name, s.category
		FROM has_skills h
		JOIN skills s ON s.skill_id = h.skill_id
		WHERE h.candidate_id = $1
		ORDER BY s.category, s.skill_name`
	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer rows.Close()
	return scanSkills(rows)
}

func scanSkills(rows pgx.Rows) ([]domain.Skill, error) {
	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
