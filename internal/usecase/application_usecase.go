package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/audit"
	"job-portal-backend/pkg/export"
	"job-portal-backend/pkg/logger"
)

// recentWindow separates "recent" from "older" applications.
const recentWindow = 24 * time.Hour

// Apply files an application for an existing candidate.
func (uc *postingUsecase) Apply(ctx context.Context, postID, candidateID int64) (*domain.Apply, error) {
	// 1. Validate candidate id is provided
	if candidateID <= 0 {
		return nil, apperror.BadRequest("Candidate ID is required")
	}

	// 2. Validate posting exists and is open
	posting, err := uc.getPosting(ctx, postID)
	if err != nil {
		return nil, err
	}
	if posting.Expired(uc.now()) {
		uc.audit.Log(ctx, audit.Event{
			Type:         audit.EventPostingExpired,
			SubjectType:  "posting",
			SubjectValue: strconv.FormatInt(postID, 10),
			Details:      map[string]any{"operation": "apply", "candidate_id": candidateID},
		})
		return nil, apperror.Expired("Posting has expired")
	}

	// 3. Validate candidate exists
	exists, err := uc.candidates.Exists(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound("Candidate not found")
	}

	// 4. Check for duplicate application
	applied, err := uc.applications.Exists(ctx, candidateID, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if applied {
		return nil, uc.duplicateApply(ctx, candidateID, postID)
	}

	// 5. Create application; the unique constraint settles races
	app := &domain.Apply{CandidateID: candidateID, PostID: postID, Status: domain.ApplyStatusPending}
	if err := uc.applications.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, uc.duplicateApply(ctx, candidateID, postID)
		}
		return nil, apperror.Internal(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventApplicationSubmitted,
		SubjectType:  "candidate",
		SubjectValue: strconv.FormatInt(candidateID, 10),
		Details:      map[string]any{"post_id": postID, "apply_id": app.ID},
	})
	return app, nil
}

func (uc *postingUsecase) duplicateApply(ctx context.Context, candidateID, postID int64) error {
	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventApplicationDuplicate,
		SubjectType:  "candidate",
		SubjectValue: strconv.FormatInt(candidateID, 10),
		Details:      map[string]any{"post_id": postID},
	})
	return apperror.Conflict("Candidate has already applied to this posting")
}

// ListApplies returns the latest application per candidate, newest first,
// narrowed by a case-insensitive name/email search and the age filter.
func (uc *postingUsecase) ListApplies(ctx context.Context, postID int64, search string, filter domain.ApplyFilter) ([]domain.Applicant, error) {
	if filter == "" {
		filter = domain.ApplyFilterAll
	}
	if !filter.Valid() {
		return nil, apperror.BadRequest("Filter must be one of: all, recent, older")
	}
	if _, err := uc.getPosting(ctx, postID); err != nil {
		return nil, err
	}

	all, err := uc.applications.ListByPosting(ctx, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now()
	needle := strings.ToLower(strings.TrimSpace(search))
	seen := make(map[int64]struct{}, len(all))
	result := make([]domain.Applicant, 0, len(all))
	for _, a := range all {
		if _, dup := seen[a.CandidateID]; dup {
			continue
		}
		seen[a.CandidateID] = struct{}{}

		if needle != "" &&
			!strings.Contains(strings.ToLower(a.FullName), needle) &&
			!strings.Contains(strings.ToLower(a.Email), needle) {
			continue
		}
		recent := now.Sub(a.AppliedAt) < recentWindow
		if (filter == domain.ApplyFilterRecent && !recent) || (filter == domain.ApplyFilterOlder && recent) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// ExportApplies renders the posting's applicants with their skill match
// as an XLSX workbook.
func (uc *postingUsecase) ExportApplies(ctx context.Context, postID int64) ([]byte, string, error) {
	posting, err := uc.getPosting(ctx, postID)
	if err != nil {
		return nil, "", err
	}
	applicants, err := uc.ListApplies(ctx, postID, "", domain.ApplyFilterAll)
	if err != nil {
		return nil, "", err
	}

	match := make(map[int64]float64)
	matches, err := uc.matching.AnalyzeSkillMatch(ctx, postID)
	if err != nil {
		// The sheet is still useful without percentages.
		logger.Log.Warn("skill match unavailable for export", "post_id", postID, "error", err)
	}
	for _, m := range matches {
		if m.CandidateID != nil {
			match[*m.CandidateID] = domain.MatchPercentage(m.MatchedSkills, m.TotalRequiredSkills)
		}
	}

	rows := make([]export.ApplicantRow, 0, len(applicants))
	for _, a := range applicants {
		rows = append(rows, export.ApplicantRow{
			CandidateID:     a.CandidateID,
			FullName:        a.FullName,
			Email:           a.Email,
			PhoneNumber:     a.PhoneNumber,
			CurrentTitle:    a.CurrentTitle,
			TotalYearOfExp:  a.TotalYearOfExp,
			Status:          a.Status,
			AppliedAt:       a.AppliedAt,
			MatchPercentage: match[a.CandidateID],
		})
	}

	data, err := export.ApplicantsWorkbook(posting.PostName, rows)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, fmt.Sprintf("applicants_post_%d.xlsx", postID), nil
}
