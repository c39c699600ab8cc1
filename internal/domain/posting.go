package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"job-portal-backend/pkg/datex"
)

type Posting struct {
	ID             int64      `json:"postID"`
	PostName       string     `json:"postName"`
	SalaryMin      float64    `json:"salaryMin"`
	SalaryMax      float64    `json:"salaryMax"`
	Position       string     `json:"position"`
	Location       string     `json:"location"`
	WorkForm       string     `json:"workForm"`
	EndDate        datex.Date `json:"endDate"`
	Domain         string     `json:"domain"`
	PostDesc       string     `json:"postDesc"`
	EmployerID     *int64     `json:"EmployerID"`
	ModStaffID     *int64     `json:"ModStaffID"`
	CreatedAt      time.Time  `json:"createdAt"`
	RepCompanyName *string    `json:"repCompanyName"`
	CompanyName    *string    `json:"companyName"`
	RequiredSkills []string   `json:"requiredSkills"`
}

// DeadlinePassed reports whether now is after the last instant of the end
// date in now's location. A posting without an end date never expires.
func DeadlinePassed(endDate datex.Date, now time.Time) bool {
	if !endDate.Valid {
		return false
	}
	return now.After(endDate.EndOfDay(now.Location()))
}

func (p *Posting) Expired(now time.Time) bool {
	return DeadlinePassed(p.EndDate, now)
}

// Amount is a salary figure that remembers whether it was present and
// numeric, so "missing" and "not a number" can be told apart.
type Amount struct {
	Value   float64
	Present bool
	Numeric bool
}

func NewAmount(v float64) Amount {
	return Amount{Value: v, Present: true, Numeric: true}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		a.Present = true
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			a.Value, a.Numeric = v, true
		}
		return nil
	}
	a.Present = true
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		a.Value, a.Numeric = v, true
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Present || !a.Numeric {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

type CreatePostingInput struct {
	PostName       string     `json:"postName" validate:"required,max=255"`
	SalaryMin      Amount     `json:"salaryMin"`
	SalaryMax      Amount     `json:"salaryMax"`
	Position       string     `json:"position" validate:"required,max=255"`
	Location       string     `json:"location" validate:"required,max=255"`
	WorkForm       string     `json:"workForm" validate:"max=100"`
	EndDate        datex.Date `json:"endDate"`
	Domain         string     `json:"domain" validate:"max=255"`
	PostDesc       string     `json:"postDesc" validate:"max=10000"`
	EmployerID     *int64     `json:"EmployerID" validate:"omitempty,gt=0"`
	ModStaffID     *int64     `json:"ModStaffID" validate:"omitempty,gt=0"`
	RequiredSkills []SkillRef `json:"requiredSkills"`
}

// UpdatePostingInput covers the mutable fields. Title and location are fixed
// after creation.
type UpdatePostingInput struct {
	PostDesc  *string    `json:"postDesc" validate:"omitempty,max=10000"`
	SalaryMin Amount     `json:"salaryMin"`
	SalaryMax Amount     `json:"salaryMax"`
	EndDate   datex.Date `json:"endDate"`
}

// PostingSummary feeds the statistics aggregation.
type PostingSummary struct {
	ID         int64      `json:"postID"`
	PostName   string     `json:"postName"`
	EndDate    datex.Date `json:"endDate"`
	Applicants int64      `json:"applicants"`
}

type PostingStatistics struct {
	TotalPostings   int64            `json:"totalPostings"`
	ActivePostings  int64            `json:"activePostings"`
	ExpiredPostings int64            `json:"expiredPostings"`
	TotalApplicants int64            `json:"totalApplicants"`
	TopPostings     []PostingSummary `json:"topPostings"`
	TopSkills       []SkillCount     `json:"topSkills"`
}

type PostingRepository interface {
	// Create calls the create-posting routine and returns the new id.
	Create(ctx context.Context, p *Posting) (int64, error)
	Update(ctx context.Context, id int64, in UpdatePostingInput) error
	Delete(ctx context.Context, id int64) error
	// GetByID returns ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*Posting, error)
	List(ctx context.Context) ([]Posting, error)
	AttachRequiredSkills(ctx context.Context, postID int64, skillIDs []int64) error
	ModeratorExists(ctx context.Context, staffID int64) (bool, error)
	// DefaultModeratorID returns nil when no moderator exists.
	DefaultModeratorID(ctx context.Context) (*int64, error)
	Summaries(ctx context.Context) ([]PostingSummary, error)
	TopApplicantSkills(ctx context.Context, limit int) ([]SkillCount, error)
}

type PostingUsecase interface {
	CreatePosting(ctx context.Context, in *CreatePostingInput) (int64, error)
	UpdatePosting(ctx context.Context, id int64, in *UpdatePostingInput) error
	DeletePosting(ctx context.Context, id int64) error
	ListPostings(ctx context.Context) ([]Posting, error)
	GetPosting(ctx context.Context, id int64) (*Posting, error)
	Statistics(ctx context.Context) (*PostingStatistics, error)
	ListApplies(ctx context.Context, postID int64, search string, filter ApplyFilter) ([]Applicant, error)
	ExportApplies(ctx context.Context, postID int64) ([]byte, string, error)
	Apply(ctx context.Context, postID, candidateID int64) (*Apply, error)
}
