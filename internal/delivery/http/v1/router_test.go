package v1_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-portal-backend/config"
	"job-portal-backend/internal/delivery/http/middleware"
	v1 "job-portal-backend/internal/delivery/http/v1"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/audit"
	"job-portal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenSecret = "handler-test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     map[string]any  `json:"error"`
	RequestID string          `json:"request_id"`
}

type fixture struct {
	candidates *MockCandidateUC
	postings   *MockPostingUC
	matching   *MockMatchingUC
	skills     *MockSkillUC
	health     *stubHealth
	cfg        *config.Config
	router     *gin.Engine
}

func newFixture(t *testing.T, tweak ...func(*config.Config)) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		candidates: new(MockCandidateUC),
		postings:   new(MockPostingUC),
		matching:   new(MockMatchingUC),
		skills:     new(MockSkillUC),
		health:     &stubHealth{status: &domain.HealthStatus{Status: "ok", Database: "ok", Redis: "not_configured"}},
		cfg: &config.Config{
			AppEnv:                   "test",
			FrontendURL:              "https://jobs.example.com",
			RateLimitWindowSeconds:   60,
			RateLimitApplyThreshold:  100,
			RateLimitGlobalThreshold: 1000,
		},
	}
	for _, fn := range tweak {
		fn(f.cfg)
	}
	f.router = v1.NewRouter(v1.RouterDeps{
		HealthUC:    f.health,
		SkillUC:     f.skills,
		CandidateUC: f.candidates,
		PostingUC:   f.postings,
		MatchingUC:  f.matching,
		Tokens:      auth.NewTokenManager(tokenSecret),
		RateLimiter: middleware.NewRateLimiter(nil, audit.Nop()),
		Config:      f.cfg,
	})
	t.Cleanup(func() {
		f.candidates.AssertExpectations(t)
		f.postings.AssertExpectations(t)
		f.matching.AssertExpectations(t)
		f.skills.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/v1/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("database down", func(t *testing.T) {
		f := newFixture(t)
		f.health.status = &domain.HealthStatus{Status: "degraded", Database: "down", Redis: "ok"}
		w := f.do(http.MethodGet, "/v1/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Contains(t, string(env.Data), `"database":"down"`)
	})
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/v1/health", "", "X-Request-ID", "req-123")
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", decode(t, w).RequestID)

	w = f.do(http.MethodGet, "/v1/health", "")
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, decode(t, w).RequestID)
}

func TestListSkills(t *testing.T) {
	f := newFixture(t)
	f.skills.On("ListSkills", mock.Anything).Return([]domain.Skill{{ID: 1, Name: "Go", Category: "Backend"}}, nil)

	w := f.do(http.MethodGet, "/v1/skills", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"skillID":1,"skillName":"Go","category":"Backend"}]`, string(decode(t, w).Data))
}

func TestApplyAsNewCandidate(t *testing.T) {
	body := `{"fullName":"Nguyen Van A","emailAddr":"a@example.com","phoneNumber":"0901234567",
		"password":"Str0ng!pass","postID":5,"skills":[1,{"SkillID":2}],
		"experiences":[{"jobTitle":"Dev","companyName":"Acme","startDate":"2019-01-01","endDate":"2023-01-01"}]}`

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		f.candidates.On("ApplyAsNewCandidate", mock.Anything, mock.MatchedBy(func(in *domain.ApplyNewCandidateInput) bool {
			return in.PostID == 5 && in.EmailAddr == "a@example.com" && len(in.Experiences) == 1 &&
				assert.ObjectsAreEqual([]int64{1, 2}, domain.SkillIDs(in.Skills))
		})).Return(&domain.ApplyNewCandidateResult{UserID: 11, CandidateID: 11, ApplyID: 3, Email: "a@example.com"}, nil)

		w := f.do(http.MethodPost, "/v1/candidates/apply-new", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"userID":11,"candidateID":11,"applyID":3,"email":"a@example.com"}`, string(decode(t, w).Data))
	})

	statusCases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"expired posting", apperror.Expired("Posting has expired"), http.StatusForbidden, "expired"},
		{"duplicate email", apperror.Conflict("Email already registered"), http.StatusConflict, "conflict"},
		{"unknown posting", apperror.NotFound("Posting not found"), http.StatusNotFound, "not_found"},
		{"weak password", apperror.BadRequest("Password too weak"), http.StatusBadRequest, "validation"},
	}
	for _, tc := range statusCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.candidates.On("ApplyAsNewCandidate", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := f.do(http.MethodPost, "/v1/candidates/apply-new", body)

			assert.Equal(t, tc.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.err.Error(), env.Message)
			assert.Equal(t, tc.kind, env.Error["kind"])
		})
	}

	t.Run("malformed body never reaches the usecase", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/v1/candidates/apply-new", `{"postID":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rate limited per client", func(t *testing.T) {
		f := newFixture(t, func(c *config.Config) { c.RateLimitApplyThreshold = 1 })
		f.candidates.On("ApplyAsNewCandidate", mock.Anything, mock.Anything).
			Return(&domain.ApplyNewCandidateResult{UserID: 1, CandidateID: 1, ApplyID: 1}, nil).Once()

		first := f.do(http.MethodPost, "/v1/candidates/apply-new", body)
		second := f.do(http.MethodPost, "/v1/candidates/apply-new", body)

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
	})
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	f := newFixture(t)
	f.postings.On("ListPostings", mock.Anything).Return(nil, errors.New("pq: connection refused"))

	w := f.do(http.MethodGet, "/v1/postings", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.NotContains(t, env.Message, "connection refused")
}

func TestGetCandidateProfile(t *testing.T) {
	profile := &domain.CandidateProfile{Candidate: &domain.Candidate{ID: 9, FullName: "B"}}

	t.Run("anonymous sees every cv", func(t *testing.T) {
		f := newFixture(t)
		f.candidates.On("GetProfile", mock.Anything, int64(9), (*int64)(nil)).Return(profile, nil)
		w := f.do(http.MethodGet, "/v1/candidates/9", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employer from query", func(t *testing.T) {
		f := newFixture(t)
		f.candidates.On("GetProfile", mock.Anything, int64(9), mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 4
		})).Return(profile, nil)
		w := f.do(http.MethodGet, "/v1/candidates/9?employerId=4", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employer from token", func(t *testing.T) {
		f := newFixture(t)
		token, err := auth.NewTokenManager(tokenSecret).IssueEmployerToken(7, time.Hour)
		require.NoError(t, err)
		f.candidates.On("GetProfile", mock.Anything, int64(9), mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 7
		})).Return(profile, nil)

		w := f.do(http.MethodGet, "/v1/candidates/9", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token wins over query", func(t *testing.T) {
		f := newFixture(t)
		token, err := auth.NewTokenManager(tokenSecret).IssueEmployerToken(7, time.Hour)
		require.NoError(t, err)
		f.candidates.On("GetProfile", mock.Anything, int64(9), mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 7
		})).Return(profile, nil)

		w := f.do(http.MethodGet, "/v1/candidates/9?employerId=4", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		f.candidates.AssertNotCalled(t, "GetProfile", mock.Anything, int64(9), mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == 4
		}))
	})

	t.Run("forged token", func(t *testing.T) {
		f := newFixture(t)
		token, err := auth.NewTokenManager("other-secret").IssueEmployerToken(7, time.Hour)
		require.NoError(t, err)

		w := f.do(http.MethodGet, "/v1/candidates/9", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/v1/candidates/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		f := newFixture(t)
		f.candidates.On("GetProfile", mock.Anything, int64(404), (*int64)(nil)).Return(nil, apperror.NotFound("Candidate not found"))
		w := f.do(http.MethodGet, "/v1/candidates/404", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateFullProfile(t *testing.T) {
	f := newFixture(t)
	f.candidates.On("UpdateFullProfile", mock.Anything, int64(9), mock.MatchedBy(func(in *domain.FullProfileInput) bool {
		return in.FullName == "B" && len(in.Education) == 1
	})).Return(&domain.ProfileFragments{Education: []domain.Education{{CandidateID: 9, EduID: 1, SchoolName: "HUST"}}}, nil)

	w := f.do(http.MethodPut, "/v1/candidates/9/full",
		`{"fullName":"B","emailAddr":"b@example.com","phoneNumber":"0901234567","education":[{"schoolName":"HUST"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"eduID":1`)
}

func TestCVUploadURL(t *testing.T) {
	f := newFixture(t)
	f.candidates.On("PresignCVUpload", mock.Anything, int64(9), "cv.pdf").
		Return(nil, apperror.Unavailable("CV storage is not configured"))

	w := f.do(http.MethodPost, "/v1/candidates/9/cvs/upload-url", `{"fileName":"cv.pdf"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPostingRoutes(t *testing.T) {
	t.Run("statistics is not read as an id", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("Statistics", mock.Anything).Return(&domain.PostingStatistics{TotalPostings: 2}, nil)
		w := f.do(http.MethodGet, "/v1/postings/statistics", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("CreatePosting", mock.Anything, mock.MatchedBy(func(in *domain.CreatePostingInput) bool {
			return in.PostName == "Go dev" && in.SalaryMin.Numeric && in.SalaryMax.Value == 2000
		})).Return(int64(42), nil)

		w := f.do(http.MethodPost, "/v1/postings",
			`{"postName":"Go dev","position":"Engineer","location":"Hanoi","salaryMin":"1000","salaryMax":2000,"endDate":"2030-01-01"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"postID":42}`, string(decode(t, w).Data))
	})

	t.Run("update after deadline", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("UpdatePosting", mock.Anything, int64(5), mock.Anything).
			Return(apperror.Expired("Posting has expired and can no longer be edited"))
		w := f.do(http.MethodPut, "/v1/postings/5", `{"salaryMin":1,"salaryMax":2}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("DeletePosting", mock.Anything, int64(5)).Return(nil)
		w := f.do(http.MethodDelete, "/v1/postings/5", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestApplyToPosting(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("Apply", mock.Anything, int64(5), int64(9)).
			Return(&domain.Apply{ID: 1, CandidateID: 9, PostID: 5, Status: domain.ApplyStatusPending}, nil)
		w := f.do(http.MethodPost, "/v1/postings/5/apply", `{"candidateID":9}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("Apply", mock.Anything, int64(5), int64(9)).
			Return(nil, apperror.Conflict("Candidate has already applied to this posting"))
		w := f.do(http.MethodPost, "/v1/postings/5/apply", `{"candidateID":9}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing candidate id is left to the usecase", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("Apply", mock.Anything, int64(5), int64(0)).
			Return(nil, apperror.BadRequest("Candidate ID is required"))
		w := f.do(http.MethodPost, "/v1/postings/5/apply", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApplicants(t *testing.T) {
	t.Run("search and filter are forwarded", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("ListApplies", mock.Anything, int64(5), "nguyen", domain.ApplyFilterRecent).
			Return([]domain.Applicant{}, nil)
		w := f.do(http.MethodGet, "/v1/postings/5/applies?search=nguyen&filter=recent", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("export", func(t *testing.T) {
		f := newFixture(t)
		f.postings.On("ExportApplies", mock.Anything, int64(5)).
			Return([]byte("PK\x03\x04"), "applicants_post_5.xlsx", nil)

		w := f.do(http.MethodGet, "/v1/postings/5/applies/export", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="applicants_post_5.xlsx"`)
		assert.Equal(t, "PK\x03\x04", w.Body.String())
	})
}

func TestMatchingRoutes(t *testing.T) {
	t.Run("skill analysis", func(t *testing.T) {
		f := newFixture(t)
		f.matching.On("SkillAnalysis", mock.Anything, int64(5)).
			Return(&domain.SkillAnalysis{PostID: 5, Candidates: []domain.SkillMatch{{MatchedSkills: 3, TotalRequiredSkills: 4, MatchPercentage: 75}}}, nil)
		w := f.do(http.MethodGet, "/v1/postings/5/skill-analysis", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"matchPercentage":75`)
	})

	t.Run("candidates by posting", func(t *testing.T) {
		f := newFixture(t)
		f.matching.On("CandidatesByPosting", mock.Anything, int64(5)).
			Return(&domain.PostingCandidates{TotalApplicants: 0, Candidates: []domain.PostingCandidate{}}, nil)
		w := f.do(http.MethodGet, "/v1/postings/5/candidates", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("evaluate", func(t *testing.T) {
		f := newFixture(t)
		f.matching.On("EvaluateProfileStrength", mock.Anything, int64(3)).
			Return(&domain.ProfileStrength{CandidateID: 3, Score: 12}, nil)
		w := f.do(http.MethodGet, "/v1/evaluate?candidate_id=3", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("evaluate with non numeric id", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/v1/evaluate?candidate_id=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
