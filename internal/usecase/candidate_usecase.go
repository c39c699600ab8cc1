package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/audit"
	"job-portal-backend/pkg/email"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/sanitize"
	"job-portal-backend/pkg/storage"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// Notifier sends the application-received email. *email.EmailService
// satisfies it.
type Notifier interface {
	IsConfigured() bool
	SendApplicationReceived(data email.ApplicationEmailData) error
}

// CVPresigner issues upload URLs for CV files. *storage.CVStorage
// satisfies it.
type CVPresigner interface {
	PresignCVUpload(ctx context.Context, candidateID int64, fileName string) (*storage.PresignedUpload, error)
}

// CandidateDeps wires the candidate workflow. Notifier and Storage are
// optional.
type CandidateDeps struct {
	Users        domain.UserRepository
	Candidates   domain.CandidateRepository
	Postings     domain.PostingRepository
	Applications domain.ApplicationRepository
	Tx           domain.TxManager
	Validate     *validator.Validate
	Audit        *audit.Logger
	Notifier     Notifier
	Storage      CVPresigner
	BcryptCost   int
	DefaultSex   string
}

type candidateUsecase struct {
	users        domain.UserRepository
	candidates   domain.CandidateRepository
	postings     domain.PostingRepository
	applications domain.ApplicationRepository
	tx           domain.TxManager
	validate     *validator.Validate
	audit        *audit.Logger
	notifier     Notifier
	storage      CVPresigner
	bcryptCost   int
	defaultSex   string
	now          func() time.Time
	notify       func(fn func())
}

func NewCandidateUsecase(d CandidateDeps) domain.CandidateUsecase {
	cost := d.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	v := d.Validate
	if v == nil {
		v = validation.New()
	}
	return &candidateUsecase{
		users:        d.Users,
		candidates:   d.Candidates,
		postings:     d.Postings,
		applications: d.Applications,
		tx:           d.Tx,
		validate:     v,
		audit:        d.Audit,
		notifier:     d.Notifier,
		storage:      d.Storage,
		bcryptCost:   cost,
		defaultSex:   d.DefaultSex,
		now:          time.Now,
		notify:       func(fn func()) { go fn() },
	}
}

// CreateUser registers a user without a candidate profile.
func (uc *candidateUsecase) CreateUser(ctx context.Context, in *domain.RegisterUserInput) (int64, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, validationError(err)
	}
	if err := uc.checkEmailAvailable(ctx, in.EmailAddr); err != nil {
		return 0, err
	}
	if !validation.StrongPassword(in.Password) {
		return 0, apperror.BadRequest(validation.PasswordPolicy)
	}

	user, err := uc.newUser(in)
	if err != nil {
		return 0, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return 0, apperror.Conflict("Email already exists")
		}
		return 0, apperror.Internal(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventUserCreated,
		SubjectType:  "email",
		SubjectValue: user.EmailAddr,
		Details:      map[string]any{"user_id": user.ID},
	})
	return user.ID, nil
}

// CreateCandidate promotes an existing user to candidate.
func (uc *candidateUsecase) CreateCandidate(ctx context.Context, in *domain.CreateCandidateInput) (int64, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, validationError(err)
	}

	exists, err := uc.users.Exists(ctx, in.UserID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if !exists {
		return 0, apperror.NotFound("User not found")
	}

	isCandidate, err := uc.candidates.Exists(ctx, in.UserID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if isCandidate {
		return 0, apperror.Conflict("User is already a candidate")
	}

	c := &domain.Candidate{
		ID:             in.UserID,
		CurrentTitle:   sanitize.Text(in.CurrentTitle),
		SelfIntro:      sanitize.Text(in.SelfIntro),
		TotalYearOfExp: in.TotalYearOfExp,
	}
	if err := uc.candidates.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return 0, apperror.Conflict("User is already a candidate")
		}
		return 0, apperror.Internal(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventCandidateCreated,
		SubjectType:  "candidate",
		SubjectValue: strconv.FormatInt(c.ID, 10),
	})
	return c.ID, nil
}

// ApplyAsNewCandidate registers the user, creates the candidate profile
// with its collections and files the application in one transaction.
// Every check runs before the first write.
func (uc *candidateUsecase) ApplyAsNewCandidate(ctx context.Context, in *domain.ApplyNewCandidateInput) (*domain.ApplyNewCandidateResult, error) {
	// 1. Required fields
	if err := uc.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	// 2. Email uniqueness
	if err := uc.checkEmailAvailable(ctx, in.EmailAddr); err != nil {
		return nil, err
	}

	// 3. Posting exists and is open
	posting, err := uc.postings.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if posting.Expired(uc.now()) {
		uc.audit.Log(ctx, audit.Event{
			Type:         audit.EventPostingExpired,
			SubjectType:  "posting",
			SubjectValue: strconv.FormatInt(posting.ID, 10),
			Details:      map[string]any{"end_date": posting.EndDate.String()},
		})
		return nil, apperror.Expired("Posting has expired")
	}

	// 4. Password policy
	if !validation.StrongPassword(in.Password) {
		return nil, apperror.BadRequest(validation.PasswordPolicy)
	}

	user, err := uc.newUser(&in.RegisterUserInput)
	if err != nil {
		return nil, err
	}

	result := &domain.ApplyNewCandidateResult{Email: user.EmailAddr}
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return apperror.Conflict("Email already exists")
			}
			return err
		}
		id := user.ID

		experiences := experienceRows(id, in.Experiences)
		candidate := &domain.Candidate{
			ID:             id,
			CurrentTitle:   sanitize.Text(in.CurrentTitle),
			SelfIntro:      sanitize.Text(in.SelfIntro),
			TotalYearOfExp: TotalYearsOfExperience(experiences, in.TotalYearOfExp),
		}
		if err := uc.candidates.Create(ctx, candidate); err != nil {
			return err
		}

		apply := &domain.Apply{CandidateID: id, PostID: posting.ID, Status: domain.ApplyStatusPending}
		if err := uc.applications.Create(ctx, apply); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return apperror.Conflict("Candidate has already applied to this posting")
			}
			return err
		}

		if err := uc.candidates.ReplaceExperiences(ctx, id, experiences); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceEducation(ctx, id, educationRows(id, in.Education)); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceForeignLanguages(ctx, id, languageRows(id, in.ForeignLanguages)); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceCertificates(ctx, id, certificateRows(id, in.Certificates)); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceCVs(ctx, id, cvRows(id, in.CVs)); err != nil {
			return err
		}
		if err := uc.candidates.LinkSkills(ctx, id, domain.SkillIDs(in.Skills)); err != nil {
			return err
		}

		result.UserID, result.CandidateID, result.ApplyID = id, id, apply.ID
		return nil
	})
	if err != nil {
		return nil, appError(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventCandidateRegistered,
		SubjectType:  "email",
		SubjectValue: result.Email,
		Details: map[string]any{
			"candidate_id": result.CandidateID,
			"post_id":      posting.ID,
			"apply_id":     result.ApplyID,
		},
	})
	uc.sendApplicationReceived(email.ApplicationEmailData{
		FullName:    user.FullName,
		Email:       user.EmailAddr,
		PostingName: posting.PostName,
		ApplyID:     result.ApplyID,
	})
	return result, nil
}

// GetProfile loads the candidate and its collections concurrently. With an
// employer id only the CVs visible to that employer are returned.
func (uc *candidateUsecase) GetProfile(ctx context.Context, candidateID int64, employerID *int64) (*domain.CandidateProfile, error) {
	candidate, err := uc.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	profile := &domain.CandidateProfile{Candidate: candidate}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile.CVs, err = uc.candidates.ListCVs(gctx, candidateID, employerID)
		return err
	})
	g.Go(func() (err error) {
		profile.Experiences, err = uc.candidates.ListExperiences(gctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		profile.Education, err = uc.candidates.ListEducation(gctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		profile.Certificates, err = uc.candidates.ListCertificates(gctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		profile.ForeignLanguages, err = uc.candidates.ListForeignLanguages(gctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		profile.Skills, err = uc.candidates.ListSkills(gctx, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *candidateUsecase) UpdateCandidate(ctx context.Context, candidateID int64, in *domain.UpdateCandidateInput) error {
	if err := uc.validate.Struct(in); err != nil {
		return validationError(err)
	}
	clean := domain.UpdateCandidateInput{
		CurrentTitle:   sanitize.Text(in.CurrentTitle),
		SelfIntro:      sanitize.Text(in.SelfIntro),
		TotalYearOfExp: in.TotalYearOfExp,
	}
	if err := uc.candidates.UpdateBasics(ctx, candidateID, clean); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// UpdateFullProfile replaces contact fields, basics and the experience,
// education and certificate collections, then re-reads them.
func (uc *candidateUsecase) UpdateFullProfile(ctx context.Context, candidateID int64, in *domain.FullProfileInput) (*domain.ProfileFragments, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if err := completeCollections(in); err != nil {
		return nil, err
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := uc.candidates.Exists(ctx, candidateID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound("Candidate not found")
		}

		contact := domain.ContactUpdate{
			FullName:    strings.TrimSpace(in.FullName),
			EmailAddr:   strings.TrimSpace(in.EmailAddr),
			PhoneNumber: strings.TrimSpace(in.PhoneNumber),
			Address:     sanitize.Ptr(in.Address),
		}
		if err := uc.users.UpdateContact(ctx, candidateID, contact); err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicate):
				return apperror.Conflict("Email already exists")
			case errors.Is(err, domain.ErrNotFound):
				return apperror.NotFound("Candidate not found")
			}
			return err
		}

		basics := domain.UpdateCandidateInput{
			CurrentTitle:   sanitize.Text(in.CurrentTitle),
			SelfIntro:      sanitize.Text(in.SelfIntro),
			TotalYearOfExp: in.TotalYearOfExp,
		}
		if err := uc.candidates.UpdateBasics(ctx, candidateID, basics); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceExperiences(ctx, candidateID, experienceRows(candidateID, in.Experiences)); err != nil {
			return err
		}
		if err := uc.candidates.ReplaceEducation(ctx, candidateID, educationRows(candidateID, in.Education)); err != nil {
			return err
		}
		return uc.candidates.ReplaceCertificates(ctx, candidateID, certificateRows(candidateID, in.Certificates))
	})
	if err != nil {
		return nil, appError(err)
	}

	uc.audit.Log(ctx, audit.Event{
		Type:         audit.EventProfileReplaced,
		SubjectType:  "candidate",
		SubjectValue: strconv.FormatInt(candidateID, 10),
		Details: map[string]any{
			"experiences":  len(in.Experiences),
			"education":    len(in.Education),
			"certificates": len(in.Certificates),
		},
	})

	fragments := &domain.ProfileFragments{}
	if fragments.Candidate, err = uc.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, apperror.Internal(err)
	}
	if fragments.Experiences, err = uc.candidates.ListExperiences(ctx, candidateID); err != nil {
		return nil, apperror.Internal(err)
	}
	if fragments.Education, err = uc.candidates.ListEducation(ctx, candidateID); err != nil {
		return nil, apperror.Internal(err)
	}
	if fragments.Certificates, err = uc.candidates.ListCertificates(ctx, candidateID); err != nil {
		return nil, apperror.Internal(err)
	}
	return fragments, nil
}

func (uc *candidateUsecase) PresignCVUpload(ctx context.Context, candidateID int64, fileName string) (*domain.CVUpload, error) {
	if uc.storage == nil {
		return nil, apperror.Unavailable("CV storage is not configured")
	}
	if _, ok := storage.ContentTypeFor(fileName); !ok {
		return nil, apperror.BadRequest("CV must be a PDF, DOC or DOCX file")
	}

	exists, err := uc.candidates.Exists(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound("Candidate not found")
	}

	upload, err := uc.storage.PresignCVUpload(ctx, candidateID, fileName)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.CVUpload{
		URL:         upload.URL,
		Key:         upload.Key,
		ContentType: upload.ContentType,
		ExpiresAt:   upload.ExpiresAt,
	}, nil
}

func (uc *candidateUsecase) checkEmailAvailable(ctx context.Context, emailAddr string) error {
	taken, err := uc.users.ExistsByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return apperror.Conflict("Email already exists")
	}
	return nil
}

func (uc *candidateUsecase) newUser(in *domain.RegisterUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	sex := strings.TrimSpace(in.Sex)
	if sex == "" {
		sex = uc.defaultSex
	}
	return &domain.User{
		FullName:     strings.TrimSpace(in.FullName),
		EmailAddr:    strings.TrimSpace(in.EmailAddr),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
		Sex:          sex,
		BirthDate:    in.BirthDate,
		Address:      sanitize.Ptr(in.Address),
	}, nil
}

// sendApplicationReceived never affects the caller; failures are logged.
func (uc *candidateUsecase) sendApplicationReceived(data email.ApplicationEmailData) {
	if uc.notifier == nil || !uc.notifier.IsConfigured() {
		return
	}
	uc.notify(func() {
		if err := uc.notifier.SendApplicationReceived(data); err != nil {
			logger.Log.Warn("application email failed",
				"apply_id", data.ApplyID,
				"email", audit.MaskEmail(data.Email),
				"error", err)
		}
	})
}
