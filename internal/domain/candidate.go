package domain

import (
	"context"
	"strings"
	"time"

	"job-portal-backend/pkg/datex"
)

// DefaultLanguageLevel is stored when a foreign language entry omits its level.
const DefaultLanguageLevel = "Sơ cấp"

type Candidate struct {
	ID             int64   `json:"candidateID"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"userEmail"`
	PhoneNumber    string  `json:"phoneNumber"`
	Address        *string `json:"address"`
	CurrentTitle   string  `json:"currentTitle"`
	SelfIntro      string  `json:"selfIntro"`
	TotalYearOfExp float64 `json:"totalYearOfExp"`
}

// Child rows carry a per-candidate ordinal (1..N) assigned at write time.

type Experience struct {
	CandidateID int64      `json:"candidateID"`
	ExpID       int        `json:"expID"`
	JobTitle    string     `json:"jobTitle"`
	CompanyName string     `json:"companyName"`
	StartDate   datex.Date `json:"startDate"`
	EndDate     datex.Date `json:"endDate"`
	Description string     `json:"description"`
}

type Education struct {
	CandidateID int64      `json:"candidateID"`
	EduID       int        `json:"eduID"`
	SchoolName  string     `json:"schoolName"`
	Major       string     `json:"major"`
	Degree      string     `json:"degree"`
	StartDate   datex.Date `json:"startDate"`
	EndDate     datex.Date `json:"endDate"`
}

type Certificate struct {
	CandidateID  int64      `json:"candidateID"`
	CertID       int        `json:"certID"`
	CertName     string     `json:"certName"`
	Organization string     `json:"organization"`
	IssueDate    datex.Date `json:"issueDate"`
	CertURL      string     `json:"certURL"`
}

type ForeignLanguage struct {
	CandidateID int64  `json:"candidateID"`
	LangID      int    `json:"langID"`
	Language    string `json:"language"`
	Level       string `json:"level"`
}

type CV struct {
	CandidateID int64  `json:"candidateID"`
	CvID        int    `json:"cvID"`
	CvName      string `json:"cvName"`
	CvURL       string `json:"cvURL"`
	IsPublic    bool   `json:"isPublic"`
}

// CandidateProfile is the full read model of one candidate.
type CandidateProfile struct {
	Candidate        *Candidate        `json:"candidate"`
	CVs              []CV              `json:"cvs"`
	Experiences      []Experience      `json:"experiences"`
	Education        []Education       `json:"education"`
	Certificates     []Certificate     `json:"certificates"`
	ForeignLanguages []ForeignLanguage `json:"foreignLanguages"`
	Skills           []Skill           `json:"skills"`
}

// CVUpload is a one-shot PUT target the client uploads a CV file to.
type CVUpload struct {
	URL         string    `json:"url"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ProfileFragments are the collections returned after a full replace.
type ProfileFragments struct {
	Candidate    *Candidate    `json:"candidate"`
	Experiences  []Experience  `json:"experiences"`
	Education    []Education   `json:"education"`
	Certificates []Certificate `json:"certificates"`
}

// Inputs. Entries failing Accepted are skipped when applying and rejected
// by a full-profile replace.

type ExperienceInput struct {
	JobTitle    string     `json:"jobTitle" validate:"max=255"`
	CompanyName string     `json:"companyName" validate:"max=255"`
	StartDate   datex.Date `json:"startDate"`
	EndDate     datex.Date `json:"endDate"`
	Description string     `json:"description" validate:"max=2000"`
}

func (e ExperienceInput) Accepted() bool {
	return strings.TrimSpace(e.JobTitle) != "" && strings.TrimSpace(e.CompanyName) != ""
}

type EducationInput struct {
	SchoolName string     `json:"schoolName" validate:"max=255"`
	Major      string     `json:"major" validate:"max=255"`
	Degree     string     `json:"degree" validate:"max=100"`
	StartDate  datex.Date `json:"startDate"`
	EndDate    datex.Date `json:"endDate"`
}

func (e EducationInput) Accepted() bool {
	return strings.TrimSpace(e.SchoolName) != ""
}

type CertificateInput struct {
	CertName     string     `json:"certName" validate:"max=255"`
	Organization string     `json:"organization" validate:"max=255"`
	IssueDate    datex.Date `json:"issueDate"`
	CertURL      string     `json:"certURL" validate:"max=500"`
}

func (c CertificateInput) Accepted() bool {
	return strings.TrimSpace(c.CertName) != ""
}

type ForeignLanguageInput struct {
	Language string `json:"language" validate:"max=100"`
	Level    string `json:"level" validate:"max=50"`
}

func (l ForeignLanguageInput) Accepted() bool {
	return strings.TrimSpace(l.Language) != ""
}

type CVInput struct {
	CvName   string `json:"cvName" validate:"max=255"`
	CvURL    string `json:"cvURL" validate:"max=500"`
	IsPublic bool   `json:"isPublic"`
}

func (c CVInput) Accepted() bool {
	return strings.TrimSpace(c.CvName) != ""
}

// ApplyNewCandidateInput registers a user, promotes them to candidate and
// files one application in a single call.
type ApplyNewCandidateInput struct {
	RegisterUserInput
	CurrentTitle     string                 `json:"currentTitle" validate:"max=255"`
	SelfIntro        string                 `json:"selfIntro" validate:"max=5000"`
	TotalYearOfExp   *float64               `json:"totalYearOfExp" validate:"omitempty,gte=0,lte=999.9"`
	PostID           int64                  `json:"postID" validate:"required,gt=0"`
	Experiences      []ExperienceInput      `json:"experiences" validate:"dive"`
	Education        []EducationInput       `json:"education" validate:"dive"`
	ForeignLanguages []ForeignLanguageInput `json:"foreignLanguages" validate:"dive"`
	Certificates     []CertificateInput     `json:"certificates" validate:"dive"`
	CVs              []CVInput              `json:"cvs" validate:"dive"`
	Skills           []SkillRef             `json:"skills"`
}

type ApplyNewCandidateResult struct {
	UserID      int64  `json:"userID"`
	CandidateID int64  `json:"candidateID"`
	ApplyID     int64  `json:"applyID"`
	Email       string `json:"email"`
}

type CreateCandidateInput struct {
	UserID         int64   `json:"userID" validate:"required,gt=0"`
	CurrentTitle   string  `json:"currentTitle" validate:"max=255"`
	SelfIntro      string  `json:"selfIntro" validate:"max=5000"`
	TotalYearOfExp float64 `json:"totalYearOfExp" validate:"gte=0,lte=999.9"`
}

type UpdateCandidateInput struct {
	CurrentTitle   string  `json:"currentTitle" validate:"max=255"`
	SelfIntro      string  `json:"selfIntro" validate:"max=5000"`
	TotalYearOfExp float64 `json:"totalYearOfExp" validate:"gte=0,lte=999.9"`
}

// FullProfileInput replaces contact fields, basics and the experience,
// education and certificate collections of one candidate.
type FullProfileInput struct {
	FullName       string             `json:"fullName" validate:"required,max=255,valid_name,no_emoji"`
	EmailAddr      string             `json:"emailAddr" validate:"required,email,max=255"`
	PhoneNumber    string             `json:"phoneNumber" validate:"required,valid_phone"`
	Address        *string            `json:"address" validate:"omitempty,max=255"`
	CurrentTitle   string             `json:"currentTitle" validate:"max=255"`
	SelfIntro      string             `json:"selfIntro" validate:"max=5000"`
	TotalYearOfExp float64            `json:"totalYearOfExp" validate:"gte=0,lte=999.9"`
	Experiences    []ExperienceInput  `json:"experiences" validate:"dive"`
	Education      []EducationInput   `json:"education" validate:"dive"`
	Certificates   []CertificateInput `json:"certificates" validate:"dive"`
}

type CandidateRepository interface {
	// Create inserts c keyed by c.ID (the user id). An existing row yields ErrDuplicate.
	Create(ctx context.Context, c *Candidate) error
	Exists(ctx context.Context, id int64) (bool, error)
	// GetByID joins the user row. Unknown ids yield ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	UpdateBasics(ctx context.Context, id int64, in UpdateCandidateInput) error

	// Replace* delete every existing row of the collection and insert rows as given.
	ReplaceExperiences(ctx context.Context, candidateID int64, rows []Experience) error
	ReplaceEducation(ctx context.Context, candidateID int64, rows []Education) error
	ReplaceCertificates(ctx context.Context, candidateID int64, rows []Certificate) error
	ReplaceForeignLanguages(ctx context.Context, candidateID int64, rows []ForeignLanguage) error
	ReplaceCVs(ctx context.Context, candidateID int64, rows []CV) error
	// LinkSkills inserts Has rows, ignoring links that already exist.
	LinkSkills(ctx context.Context, candidateID int64, skillIDs []int64) error

	ListExperiences(ctx context.Context, candidateID int64) ([]Experience, error)
	ListEducation(ctx context.Context, candidateID int64) ([]Education, error)
	ListCertificates(ctx context.Context, candidateID int64) ([]Certificate, error)
	ListForeignLanguages(ctx context.Context, candidateID int64) ([]ForeignLanguage, error)
	// ListCVs returns every CV, or when employerID is set only public CVs and
	// those the employer was granted access to.
	ListCVs(ctx context.Context, candidateID int64, employerID *int64) ([]CV, error)
	ListSkills(ctx context.Context, candidateID int64) ([]Skill, error)
}

type CandidateUsecase interface {
	CreateUser(ctx context.Context, in *RegisterUserInput) (int64, error)
	CreateCandidate(ctx context.Context, in *CreateCandidateInput) (int64, error)
	ApplyAsNewCandidate(ctx context.Context, in *ApplyNewCandidateInput) (*ApplyNewCandidateResult, error)
	GetProfile(ctx context.Context, candidateID int64, employerID *int64) (*CandidateProfile, error)
	UpdateCandidate(ctx context.Context, candidateID int64, in *UpdateCandidateInput) error
	UpdateFullProfile(ctx context.Context, candidateID int64, in *FullProfileInput) (*ProfileFragments, error)
	PresignCVUpload(ctx context.Context, candidateID int64, fileName string) (*CVUpload, error)
}
