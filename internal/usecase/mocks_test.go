package usecase_test

import (
	"context"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/email"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) UpdateContact(ctx context.Context, id int64, c domain.ContactUpdate) error {
	return m.Called(ctx, id, c).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCandidateRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) UpdateBasics(ctx context.Context, id int64, in domain.UpdateCandidateInput) error {
	return m.Called(ctx, id, in).Error(0)
}
func (m *MockCandidateRepo) ReplaceExperiences(ctx context.Context, id int64, rows []domain.Experience) error {
	return m.Called(ctx, id, rows).Error(0)
}
func (m *MockCandidateRepo) ReplaceEducation(ctx context.Context, id int64, rows []domain.Education) error {
	return m.Called(ctx, id, rows).Error(0)
}
func (m *MockCandidateRepo) ReplaceCertificates(ctx context.Context, id int64, rows []domain.Certificate) error {
	return m.Called(ctx, id, rows).Error(0)
}
func (m *MockCandidateRepo) ReplaceForeignLanguages(ctx context.Context, id int64, rows []domain.ForeignLanguage) error {
	return m.Called(ctx, id, rows).Error(0)
}
func (m *MockCandidateRepo) ReplaceCVs(ctx context.Context, id int64, rows []domain.CV) error {
	return m.Called(ctx, id, rows).Error(0)
}
func (m *MockCandidateRepo) LinkSkills(ctx context.Context, id int64, skillIDs []int64) error {
	return m.Called(ctx, id, skillIDs).Error(0)
}
func (m *MockCandidateRepo) ListExperiences(ctx context.Context, id int64) ([]domain.Experience, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).([]domain.Experience)
	return rows, args.Error(1)
}
func (m *MockCandidateRepo) ListEducation(ctx context.Context, id int64) ([]domain.Education, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).([]domain.Education)
	return rows, args.Error(1)
}
func (m *MockCandidateRepo) ListCertificates(ctx context.Context, id int64) ([]domain.Certificate, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).([]domain.Certificate)
	return rows, args.Error(1)
}
func (m *MockCandidateRepo) ListForeignLanguages(ctx context.Context, id int64) ([]domain.ForeignLanguage, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).([]domain.ForeignLanguage)
	return rows, args.Error(1)
}
func (m *MockCandidateRepo) ListCVs(ctx context.Context, id int64, employerID *int64) ([]domain.CV, error) {
	args := m.Called(ctx, id, employerID)
	rows, _ := args.Get(0).([]domain.CV)
	return rows, args.Error(1)
}
func (m *MockCandidateRepo) ListSkills(ctx context.Context, id int64) ([]domain.Skill, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).([]domain.Skill)
	return rows, args.Error(1)
}

type MockPostingRepo struct {
	mock.Mock
}

func (m *MockPostingRepo) Create(ctx context.Context, p *domain.Posting) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPostingRepo) Update(ctx context.Context, id int64, in domain.UpdatePostingInput) error {
	return m.Called(ctx, id, in).Error(0)
}
func (m *MockPostingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPostingRepo) GetByID(ctx context.Context, id int64) (*domain.Posting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}
func (m *MockPostingRepo) List(ctx context.Context) ([]domain.Posting, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Posting)
	return rows, args.Error(1)
}
func (m *MockPostingRepo) AttachRequiredSkills(ctx context.Context, postID int64, skillIDs []int64) error {
	return m.Called(ctx, postID, skillIDs).Error(0)
}
func (m *MockPostingRepo) ModeratorExists(ctx context.Context, staffID int64) (bool, error) {
	args := m.Called(ctx, staffID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPostingRepo) DefaultModeratorID(ctx context.Context) (*int64, error) {
	args := m.Called(ctx)
	id, _ := args.Get(0).(*int64)
	return id, args.Error(1)
}
func (m *MockPostingRepo) Summaries(ctx context.Context) ([]domain.PostingSummary, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.PostingSummary)
	return rows, args.Error(1)
}
func (m *MockPostingRepo) TopApplicantSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]domain.SkillCount)
	return rows, args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, a *domain.Apply) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, candidateID, postID int64) (bool, error) {
	args := m.Called(ctx, candidateID, postID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) ListByPosting(ctx context.Context, postID int64) ([]domain.Applicant, error) {
	args := m.Called(ctx, postID)
	rows, _ := args.Get(0).([]domain.Applicant)
	return rows, args.Error(1)
}

type MockMatchingRepo struct {
	mock.Mock
}

func (m *MockMatchingRepo) AnalyzeSkillMatch(ctx context.Context, postID int64) ([]domain.SkillMatch, error) {
	args := m.Called(ctx, postID)
	rows, _ := args.Get(0).([]domain.SkillMatch)
	return rows, args.Error(1)
}
func (m *MockMatchingRepo) CandidatesByPosting(ctx context.Context, postID int64) ([]domain.PostingCandidate, error) {
	args := m.Called(ctx, postID)
	rows, _ := args.Get(0).([]domain.PostingCandidate)
	return rows, args.Error(1)
}
func (m *MockMatchingRepo) ProfileStrength(ctx context.Context, candidateID int64) (float64, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockMatchingRepo) FindUserIDByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMatchingRepo) FindUserIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMatchingRepo) FindCandidateIDByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Skill)
	return rows, args.Error(1)
}

type MockSkillCache struct {
	mock.Mock
}

func (m *MockSkillCache) Get(ctx context.Context) ([]domain.Skill, bool, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Skill)
	return rows, args.Bool(1), args.Error(2)
}
func (m *MockSkillCache) Set(ctx context.Context, skills []domain.Skill) error {
	return m.Called(ctx, skills).Error(0)
}

// fakeTx runs fn directly and records whether the transaction committed.
type fakeTx struct {
	calls     int
	committed int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	f.committed++
	return nil
}

type fakeNotifier struct {
	configured bool
	sent       chan email.ApplicationEmailData
	err        error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{configured: true, sent: make(chan email.ApplicationEmailData, 1)}
}

func (f *fakeNotifier) IsConfigured() bool { return f.configured }

func (f *fakeNotifier) SendApplicationReceived(data email.ApplicationEmailData) error {
	f.sent <- data
	return f.err
}
