package domain

import (
	"context"
	"time"
)

// Apply status constants
const (
	ApplyStatusPending  = "pending"
	ApplyStatusAccepted = "accepted"
	ApplyStatusRejected = "rejected"
)

// Apply is one candidate's application to one posting.
type Apply struct {
	ID          int64     `json:"applyID"`
	CandidateID int64     `json:"candidateID"`
	PostID      int64     `json:"postID"`
	AppliedAt   time.Time `json:"appliedAt"`
	Status      string    `json:"status"`
}

// Applicant is an Apply joined with the candidate's contact details.
type Applicant struct {
	Apply
	FullName       string  `json:"fullName"`
	Email          string  `json:"userEmail"`
	PhoneNumber    string  `json:"phoneNumber"`
	CurrentTitle   string  `json:"currentTitle"`
	TotalYearOfExp float64 `json:"totalYearOfExp"`
}

type ApplyFilter string

const (
	ApplyFilterAll    ApplyFilter = "all"
	ApplyFilterRecent ApplyFilter = "recent"
	ApplyFilterOlder  ApplyFilter = "older"
)

func (f ApplyFilter) Valid() bool {
	switch f {
	case ApplyFilterAll, ApplyFilterRecent, ApplyFilterOlder:
		return true
	}
	return false
}

type ApplyRequest struct {
	CandidateID int64 `json:"candidateID" validate:"required,gt=0"`
}

type ApplicationRepository interface {
	// Create inserts a pending apply and sets ID. A second apply for the
	// same (candidate, posting) yields ErrDuplicate.
	Create(ctx context.Context, a *Apply) error
	Exists(ctx context.Context, candidateID, postID int64) (bool, error)
	// ListByPosting returns every apply of the posting joined with contact
	// details, newest first.
	ListByPosting(ctx context.Context, postID int64) ([]Applicant, error)
}
