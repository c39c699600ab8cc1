package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/audit"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/sanitize"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	topPostingsLimit = 5
	topSkillsLimit   = 10
)

type postingUsecase struct {
	postings     domain.PostingRepository
	applications domain.ApplicationRepository
	candidates   domain.CandidateRepository
	matching     domain.MatchingRepository
	tx           domain.TxManager
	validate     *validator.Validate
	audit        *audit.Logger
	now          func() time.Time
}

func NewPostingUsecase(
	postings domain.PostingRepository,
	applications domain.ApplicationRepository,
	candidates domain.CandidateRepository,
	matching domain.MatchingRepository,
	tx domain.TxManager,
	validate *validator.Validate,
	auditLogger *audit.Logger,
) domain.PostingUsecase {
	if validate == nil {
		validate = validation.New()
	}
	return &postingUsecase{
		postings:     postings,
		applications: applications,
		candidates:   candidates,
		matching:     matching,
		tx:           tx,
		validate:     validate,
		audit:        auditLogger,
		now:          time.Now,
	}
}

// ValidateSalary requires both bounds present, numeric, non-negative and
// ordered.
func ValidateSalary(min, max domain.Amount) error {
	if !min.Present || !max.Present {
		return apperror.BadRequest("Salary range is required")
	}
	if !min.Numeric || !max.Numeric {
		return apperror.BadRequest("Salary must be a number")
	}
	if min.Value < 0 || max.Value < 0 {
		return apperror.BadRequest("Salary must not be negative")
	}
	if max.Value < min.Value {
		return apperror.BadRequest("Maximum salary must be greater than or equal to minimum salary")
	}
	return nil
}

func (uc *postingUsecase) CreatePosting(ctx context.Context, in *domain.CreatePostingInput) (int64, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, validationError(err)
	}
	if err := ValidateSalary(in.SalaryMin, in.SalaryMax); err != nil {
		return 0, err
	}

	modStaffID, err := uc.resolveModerator(ctx, in.ModStaffID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	employerID := in.EmployerID
	if employerID == nil {
		if id, ok := domain.EmployerIDFrom(ctx); ok {
			employerID = &id
		}
	}

	posting := &domain.Posting{
		PostName:   sanitize.Text(in.PostName),
		SalaryMin:  in.SalaryMin.Value,
		SalaryMax:  in.SalaryMax.Value,
		Position:   sanitize.Text(in.Position),
		Location:   sanitize.Text(in.Location),
		WorkForm:   sanitize.Text(in.WorkForm),
		EndDate:    in.EndDate,
		Domain:     sanitize.Text(in.Domain),
		PostDesc:   sanitize.Text(in.PostDesc),
		EmployerID: employerID,
		ModStaffID: modStaffID,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.postings.Create(ctx, posting); err != nil {
			return err
		}
		return uc.postings.AttachRequiredSkills(ctx, posting.ID, domain.SkillIDs(in.RequiredSkills))
	})
	if err != nil {
		return 0, appError(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventPostingCreated,
		SubjectType:  "posting",
		SubjectValue: strconv.FormatInt(posting.ID, 10),
		Details:      map[string]any{"post_name": posting.PostName},
	})
	return posting.ID, nil
}

// resolveModerator keeps a supplied moderator that exists and otherwise
// falls back to the default one.
func (uc *postingUsecase) resolveModerator(ctx context.Context, requested *int64) (*int64, error) {
	if requested != nil {
		ok, err := uc.postings.ModeratorExists(ctx, *requested)
		if err != nil {
			return nil, err
		}
		if ok {
			return requested, nil
		}
		logger.Log.Debug("moderator not found, using default", "mod_staff_id", *requested)
	}
	return uc.postings.DefaultModeratorID(ctx)
}

func (uc *postingUsecase) UpdatePosting(ctx context.Context, id int64, in *domain.UpdatePostingInput) error {
	if err := uc.validate.Struct(in); err != nil {
		return validationError(err)
	}
	if err := ValidateSalary(in.SalaryMin, in.SalaryMax); err != nil {
		return err
	}

	posting, err := uc.getPosting(ctx, id)
	if err != nil {
		return err
	}
	if posting.Expired(uc.now()) {
		uc.audit.Log(ctx, audit.Event{
			Type:         audit.EventPostingExpired,
			SubjectType:  "posting",
			SubjectValue: strconv.FormatInt(id, 10),
			Details:      map[string]any{"operation": "update", "end_date": posting.EndDate.String()},
		})
		return apperror.Expired("Posting has expired and can no longer be edited")
	}

	clean := domain.UpdatePostingInput{
		PostDesc:  sanitize.Ptr(in.PostDesc),
		SalaryMin: in.SalaryMin,
		SalaryMax: in.SalaryMax,
		EndDate:   in.EndDate,
	}
	if err := uc.postings.Update(ctx, id, clean); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Posting not found")
		}
		return apperror.Internal(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventPostingUpdated,
		SubjectType:  "posting",
		SubjectValue: strconv.FormatInt(id, 10),
	})
	return nil
}

func (uc *postingUsecase) DeletePosting(ctx context.Context, id int64) error {
	if err := uc.postings.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Posting not found")
		}
		return apperror.Internal(err)
	}
	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventPostingDeleted,
		SubjectType:  "posting",
		SubjectValue: strconv.FormatInt(id, 10),
	})
	return nil
}

func (uc *postingUsecase) ListPostings(ctx context.Context) ([]domain.Posting, error) {
	postings, err := uc.postings.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return postings, nil
}

func (uc *postingUsecase) GetPosting(ctx context.Context, id int64) (*domain.Posting, error) {
	return uc.getPosting(ctx, id)
}

func (uc *postingUsecase) getPosting(ctx context.Context, id int64) (*domain.Posting, error) {
	posting, err := uc.postings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Posting not found")
		}
		return nil, apperror.Internal(err)
	}
	return posting, nil
}

// Statistics aggregates posting and applicant counts. A posting is active
// until the end of its end date.
func (uc *postingUsecase) Statistics(ctx context.Context) (*domain.PostingStatistics, error) {
	summaries, err := uc.postings.Summaries(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	topSkills, err := uc.postings.TopApplicantSkills(ctx, topSkillsLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now()
	stats := &domain.PostingStatistics{
		TotalPostings: int64(len(summaries)),
		TopSkills:     topSkills,
	}
	for _, s := range summaries {
		if domain.DeadlinePassed(s.EndDate, now) {
			stats.ExpiredPostings++
		} else {
			stats.ActivePostings++
		}
		stats.TotalApplicants += s.Applicants
	}

	top := make([]domain.PostingSummary, len(summaries))
	copy(top, summaries)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Applicants > top[j].Applicants })
	if len(top) > topPostingsLimit {
		top = top[:topPostingsLimit]
	}
	stats.TopPostings = top
	return stats, nil
}
