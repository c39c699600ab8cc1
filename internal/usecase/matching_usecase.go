package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
)

// Advice tiers for the profile strength score, applied to the routine's
// raw score.
const (
	AdviceWeak     = "Your profile is weak. Add more skills and work experience."
	AdviceAverage  = "Your profile is average. Keep improving your skills."
	AdviceGood     = "Your profile is fairly good. Keep it up."
	AdviceStrong   = "Your profile is very strong, with a high chance of being hired."
	weakThreshold  = 5
	averageCeiling = 10
	goodCeiling    = 15
)

// AdviceFor maps a profile strength score to its advice tier.
func AdviceFor(score float64) string {
	switch {
	case score < weakThreshold:
		return AdviceWeak
	case score < averageCeiling:
		return AdviceAverage
	case score < goodCeiling:
		return AdviceGood
	default:
		return AdviceStrong
	}
}

type matchingUsecase struct {
	matching domain.MatchingRepository
	postings domain.PostingRepository
}

func NewMatchingUsecase(matching domain.MatchingRepository, postings domain.PostingRepository) domain.MatchingUsecase {
	return &matchingUsecase{matching: matching, postings: postings}
}

func (uc *matchingUsecase) SkillAnalysis(ctx context.Context, postID int64) (*domain.SkillAnalysis, error) {
	if err := uc.requirePosting(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := uc.matching.AnalyzeSkillMatch(ctx, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range rows {
		row := &rows[i]
		if row.CandidateID == nil {
			row.CandidateID = uc.resolveCandidateID(ctx, row)
		}
		row.MatchPercentage = domain.MatchPercentage(row.MatchedSkills, row.TotalRequiredSkills)
	}
	return &domain.SkillAnalysis{PostID: postID, Candidates: rows}, nil
}

// resolveCandidateID fills a missing id by email, then by name, then by
// joining candidates to users. The first hit wins; a miss leaves the row
// untouched.
func (uc *matchingUsecase) resolveCandidateID(ctx context.Context, row *domain.SkillMatch) *int64 {
	email := strings.TrimSpace(row.ContactEmail)
	name := strings.TrimSpace(row.CandidateName)

	lookups := []struct {
		key string
		fn  func(context.Context, string) (int64, error)
	}{
		{email, uc.matching.FindUserIDByEmail},
		{name, uc.matching.FindUserIDByName},
		{email, uc.matching.FindCandidateIDByEmail},
	}
	for _, l := range lookups {
		if l.key == "" {
			continue
		}
		id, err := l.fn(ctx, l.key)
		if err == nil {
			return &id
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Debug("candidate id lookup failed", "error", err)
		}
	}
	return nil
}

func (uc *matchingUsecase) CandidatesByPosting(ctx context.Context, postID int64) (*domain.PostingCandidates, error) {
	if err := uc.requirePosting(ctx, postID); err != nil {
		return nil, err
	}
	candidates, err := uc.matching.CandidatesByPosting(ctx, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.PostingCandidates{Candidates: candidates, TotalApplicants: len(candidates)}, nil
}

func (uc *matchingUsecase) EvaluateProfileStrength(ctx context.Context, candidateID int64) (*domain.ProfileStrength, error) {
	if candidateID <= 0 {
		return nil, apperror.BadRequest("Candidate ID is required")
	}
	score, err := uc.matching.ProfileStrength(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return &domain.ProfileStrength{
		CandidateID: candidateID,
		Score:       score,
		Advice:      AdviceFor(score),
	}, nil
}

func (uc *matchingUsecase) requirePosting(ctx context.Context, postID int64) error {
	if _, err := uc.postings.GetByID(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Posting not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
