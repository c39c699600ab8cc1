package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSkillAnalysis_MatchPercentage(t *testing.T) {
	matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
	uc := usecase.NewMatchingUsecase(matching, postings)
	id1, id2 := int64(1), int64(2)
	postings.On("GetByID", mock.Anything, int64(5)).Return(openPosting(5), nil)
	matching.On("AnalyzeSkillMatch", mock.Anything, int64(5)).Return([]domain.SkillMatch{
		{CandidateID: &id1, MatchedSkills: 3, TotalRequiredSkills: 4},
		{CandidateID: &id2, MatchedSkills: 0, TotalRequiredSkills: 0},
	}, nil)

	res, err := uc.SkillAnalysis(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 75.0, res.Candidates[0].MatchPercentage)
	assert.Equal(t, 0.0, res.Candidates[1].MatchPercentage)
}

func TestSkillAnalysis_ResolvesMissingCandidateID(t *testing.T) {
	t.Run("Email lookup wins", func(t *testing.T) {
		matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
		uc := usecase.NewMatchingUsecase(matching, postings)
		postings.On("GetByID", mock.Anything, int64(5)).Return(openPosting(5), nil)
		matching.On("AnalyzeSkillMatch", mock.Anything, int64(5)).Return([]domain.SkillMatch{
			{CandidateName: "Le Van C", ContactEmail: "c@example.com"},
		}, nil)
		matching.On("FindUserIDByEmail", mock.Anything, "c@example.com").Return(int64(11), nil)

		res, err := uc.SkillAnalysis(context.Background(), 5)
		require.NoError(t, err)
		require.NotNil(t, res.Candidates[0].CandidateID)
		assert.Equal(t, int64(11), *res.Candidates[0].CandidateID)
		matching.AssertNotCalled(t, "FindUserIDByName", mock.Anything, mock.Anything)
	})

	t.Run("Falls through name then candidate join", func(t *testing.T) {
		matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
		uc := usecase.NewMatchingUsecase(matching, postings)
		postings.On("GetByID", mock.Anything, int64(5)).Return(openPosting(5), nil)
		matching.On("AnalyzeSkillMatch", mock.Anything, int64(5)).Return([]domain.SkillMatch{
			{CandidateName: "Le Van C", ContactEmail: "c@example.com"},
		}, nil)
		matching.On("FindUserIDByEmail", mock.Anything, "c@example.com").Return(int64(0), domain.ErrNotFound)
		matching.On("FindUserIDByName", mock.Anything, "Le Van C").Return(int64(0), domain.ErrNotFound)
		matching.On("FindCandidateIDByEmail", mock.Anything, "c@example.com").Return(int64(12), nil)

		res, err := uc.SkillAnalysis(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(12), *res.Candidates[0].CandidateID)
	})

	t.Run("Unresolved rows are kept", func(t *testing.T) {
		matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
		uc := usecase.NewMatchingUsecase(matching, postings)
		postings.On("GetByID", mock.Anything, int64(5)).Return(openPosting(5), nil)
		matching.On("AnalyzeSkillMatch", mock.Anything, int64(5)).Return([]domain.SkillMatch{
			{CandidateName: "Ghost", ContactEmail: "ghost@example.com"},
		}, nil)
		matching.On("FindUserIDByEmail", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))
		matching.On("FindUserIDByName", mock.Anything, mock.Anything).Return(int64(0), domain.ErrNotFound)
		matching.On("FindCandidateIDByEmail", mock.Anything, mock.Anything).Return(int64(0), domain.ErrNotFound)

		res, err := uc.SkillAnalysis(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, res.Candidates, 1)
		assert.Nil(t, res.Candidates[0].CandidateID)
	})
}

func TestSkillAnalysis_UnknownPosting(t *testing.T) {
	matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
	uc := usecase.NewMatchingUsecase(matching, postings)
	postings.On("GetByID", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)

	_, err := uc.SkillAnalysis(context.Background(), 5)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	matching.AssertNotCalled(t, "AnalyzeSkillMatch", mock.Anything, mock.Anything)
}

func TestCandidatesByPosting(t *testing.T) {
	matching, postings := new(MockMatchingRepo), new(MockPostingRepo)
	uc := usecase.NewMatchingUsecase(matching, postings)
	postings.On("GetByID", mock.Anything, int64(5)).Return(openPosting(5), nil)
	matching.On("CandidatesByPosting", mock.Anything, int64(5)).Return([]domain.PostingCandidate{
		{CandidateID: 1}, {CandidateID: 2},
	}, nil)

	res, err := uc.CandidatesByPosting(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalApplicants)
}

func TestAdviceTiers(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, usecase.AdviceWeak},
		{4.9, usecase.AdviceWeak},
		{5, usecase.AdviceAverage},
		{9.9, usecase.AdviceAverage},
		{10, usecase.AdviceGood},
		{14.9, usecase.AdviceGood},
		{15, usecase.AdviceStrong},
		{18, usecase.AdviceStrong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.AdviceFor(tt.score), "score %v", tt.score)
	}
}

func TestEvaluateProfileStrength(t *testing.T) {
	t.Run("Maps the routine score", func(t *testing.T) {
		matching := new(MockMatchingRepo)
		uc := usecase.NewMatchingUsecase(matching, new(MockPostingRepo))
		matching.On("ProfileStrength", mock.Anything, int64(42)).Return(12.0, nil)

		res, err := uc.EvaluateProfileStrength(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 12.0, res.Score)
		assert.Equal(t, usecase.AdviceGood, res.Advice)
	})

	t.Run("Unknown candidate is not found", func(t *testing.T) {
		matching := new(MockMatchingRepo)
		uc := usecase.NewMatchingUsecase(matching, new(MockPostingRepo))
		matching.On("ProfileStrength", mock.Anything, int64(42)).Return(0.0, domain.ErrNotFound)

		_, err := uc.EvaluateProfileStrength(context.Background(), 42)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("Missing candidate id is a validation error", func(t *testing.T) {
		uc := usecase.NewMatchingUsecase(new(MockMatchingRepo), new(MockPostingRepo))
		_, err := uc.EvaluateProfileStrength(context.Background(), 0)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}
