package v1_test

import (
	"context"

	"job-portal-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) CreateUser(ctx context.Context, in *domain.RegisterUserInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCandidateUC) CreateCandidate(ctx context.Context, in *domain.CreateCandidateInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCandidateUC) ApplyAsNewCandidate(ctx context.Context, in *domain.ApplyNewCandidateInput) (*domain.ApplyNewCandidateResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*domain.ApplyNewCandidateResult)
	return res, args.Error(1)
}
func (m *MockCandidateUC) GetProfile(ctx context.Context, id int64, employerID *int64) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, id, employerID)
	res, _ := args.Get(0).(*domain.CandidateProfile)
	return res, args.Error(1)
}
func (m *MockCandidateUC) UpdateCandidate(ctx context.Context, id int64, in *domain.UpdateCandidateInput) error {
	return m.Called(ctx, id, in).Error(0)
}
func (m *MockCandidateUC) UpdateFullProfile(ctx context.Context, id int64, in *domain.FullProfileInput) (*domain.ProfileFragments, error) {
	args := m.Called(ctx, id, in)
	res, _ := args.Get(0).(*domain.ProfileFragments)
	return res, args.Error(1)
}
func (m *MockCandidateUC) PresignCVUpload(ctx context.Context, id int64, fileName string) (*domain.CVUpload, error) {
	args := m.Called(ctx, id, fileName)
	res, _ := args.Get(0).(*domain.CVUpload)
	return res, args.Error(1)
}

type MockPostingUC struct {
	mock.Mock
}

func (m *MockPostingUC) CreatePosting(ctx context.Context, in *domain.CreatePostingInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPostingUC) UpdatePosting(ctx context.Context, id int64, in *domain.UpdatePostingInput) error {
	return m.Called(ctx, id, in).Error(0)
}
func (m *MockPostingUC) DeletePosting(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPostingUC) ListPostings(ctx context.Context) ([]domain.Posting, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Posting)
	return res, args.Error(1)
}
func (m *MockPostingUC) GetPosting(ctx context.Context, id int64) (*domain.Posting, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Posting)
	return res, args.Error(1)
}
func (m *MockPostingUC) Statistics(ctx context.Context) (*domain.PostingStatistics, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*domain.PostingStatistics)
	return res, args.Error(1)
}
func (m *MockPostingUC) ListApplies(ctx context.Context, postID int64, search string, filter domain.ApplyFilter) ([]domain.Applicant, error) {
	args := m.Called(ctx, postID, search, filter)
	res, _ := args.Get(0).([]domain.Applicant)
	return res, args.Error(1)
}
func (m *MockPostingUC) ExportApplies(ctx context.Context, postID int64) ([]byte, string, error) {
	args := m.Called(ctx, postID)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}
func (m *MockPostingUC) Apply(ctx context.Context, postID, candidateID int64) (*domain.Apply, error) {
	args := m.Called(ctx, postID, candidateID)
	res, _ := args.Get(0).(*domain.Apply)
	return res, args.Error(1)
}

type MockMatchingUC struct {
	mock.Mock
}

func (m *MockMatchingUC) SkillAnalysis(ctx context.Context, postID int64) (*domain.SkillAnalysis, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).(*domain.SkillAnalysis)
	return res, args.Error(1)
}
func (m *MockMatchingUC) CandidatesByPosting(ctx context.Context, postID int64) (*domain.PostingCandidates, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).(*domain.PostingCandidates)
	return res, args.Error(1)
}
func (m *MockMatchingUC) EvaluateProfileStrength(ctx context.Context, candidateID int64) (*domain.ProfileStrength, error) {
	args := m.Called(ctx, candidateID)
	res, _ := args.Get(0).(*domain.ProfileStrength)
	return res, args.Error(1)
}

type MockSkillUC struct {
	mock.Mock
}

func (m *MockSkillUC) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Skill)
	return res, args.Error(1)
}

type stubHealth struct {
	status *domain.HealthStatus
}

func (s stubHealth) Check(context.Context) *domain.HealthStatus { return s.status }
