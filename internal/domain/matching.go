package domain

import (
	"context"
	"math"
	"time"
)

// SkillMatch is one candidate row of a posting's skill analysis.
type SkillMatch struct {
	CandidateID         *int64  `json:"candidateID"`
	CandidateName       string  `json:"candidateName"`
	ContactEmail        string  `json:"contactEmail"`
	CurrentTitle        *string `json:"currentTitle"`
	MatchedSkills       int     `json:"matchedSkills"`
	TotalRequiredSkills int     `json:"totalRequiredSkills"`
	MatchPercentage     float64 `json:"matchPercentage"`
}

// MatchPercentage is matched/total*100 rounded to two decimals, 0 when
// the posting requires no skills.
func MatchPercentage(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*10000) / 100
}

type SkillAnalysis struct {
	PostID     int64        `json:"postID"`
	Candidates []SkillMatch `json:"candidates"`
}

type PostingCandidate struct {
	CandidateID    int64     `json:"candidateID"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	CurrentTitle   string    `json:"currentTitle"`
	TotalYearOfExp float64   `json:"totalYearOfExp"`
	AppliedAt      time.Time `json:"appliedAt"`
	Status         string    `json:"status"`
}

type PostingCandidates struct {
	Candidates      []PostingCandidate `json:"candidates"`
	TotalApplicants int                `json:"totalApplicants"`
}

type ProfileStrength struct {
	CandidateID int64   `json:"candidateID"`
	Score       float64 `json:"score"`
	Advice      string  `json:"advice"`
}

type MatchingRepository interface {
	AnalyzeSkillMatch(ctx context.Context, postID int64) ([]SkillMatch, error)
	CandidatesByPosting(ctx context.Context, postID int64) ([]PostingCandidate, error)
	// ProfileStrength returns ErrNotFound when the routine yields no score.
	ProfileStrength(ctx context.Context, candidateID int64) (float64, error)

	// Identity lookups used to fill a missing candidate id. Each returns
	// ErrNotFound on a miss.
	FindUserIDByEmail(ctx context.Context, email string) (int64, error)
	FindUserIDByName(ctx context.Context, fullName string) (int64, error)
	FindCandidateIDByEmail(ctx context.Context, email string) (int64, error)
}

type MatchingUsecase interface {
	SkillAnalysis(ctx context.Context, postID int64) (*SkillAnalysis, error)
	CandidatesByPosting(ctx context.Context, postID int64) (*PostingCandidates, error)
	EvaluateProfileStrength(ctx context.Context, candidateID int64) (*ProfileStrength, error)
}
