package usecase

import (
	"fmt"
	"math"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/sanitize"

	"github.com/ecodeclub/ekit/slice"
)

const (
	daysPerYear = 365.25
	// maxYearsOfExperience is the largest value NUMERIC(4,1) holds.
	maxYearsOfExperience = 999.9
)

type acceptable interface {
	Accepted() bool
}

// accepted drops entries missing their minimal required fields.
func accepted[T acceptable](in []T) []T {
	return slice.FindAll(in, func(v T) bool { return v.Accepted() })
}

// firstRejected is the 1-based position of the first entry missing its
// required fields, or 0 when every entry is complete.
func firstRejected[T acceptable](in []T) int {
	return slice.IndexFunc(in, func(v T) bool { return !v.Accepted() }) + 1
}

// completeCollections rejects a full replace carrying incomplete entries, so
// each collection is written with exactly the rows sent.
func completeCollections(in *domain.FullProfileInput) error {
	if n := firstRejected(in.Experiences); n > 0 {
		return apperror.BadRequest(fmt.Sprintf("Experience #%d requires a job title and company name", n))
	}
	if n := firstRejected(in.Education); n > 0 {
		return apperror.BadRequest(fmt.Sprintf("Education #%d requires a school name", n))
	}
	if n := firstRejected(in.Certificates); n > 0 {
		return apperror.BadRequest(fmt.Sprintf("Certificate #%d requires a certificate name", n))
	}
	return nil
}

// Ordinals are the 1-based position among accepted rows, recomputed on
// every write.

func experienceRows(candidateID int64, in []domain.ExperienceInput) []domain.Experience {
	return slice.Map(accepted(in), func(idx int, src domain.ExperienceInput) domain.Experience {
		return domain.Experience{
			CandidateID: candidateID,
			ExpID:       idx + 1,
			JobTitle:    sanitize.Text(src.JobTitle),
			CompanyName: sanitize.Text(src.CompanyName),
			StartDate:   src.StartDate,
			EndDate:     src.EndDate,
			Description: sanitize.Text(src.Description),
		}
	})
}

func educationRows(candidateID int64, in []domain.EducationInput) []domain.Education {
	return slice.Map(accepted(in), func(idx int, src domain.EducationInput) domain.Education {
		return domain.Education{
			CandidateID: candidateID,
			EduID:       idx + 1,
			SchoolName:  sanitize.Text(src.SchoolName),
			Major:       sanitize.Text(src.Major),
			Degree:      sanitize.Text(src.Degree),
			StartDate:   src.StartDate,
			EndDate:     src.EndDate,
		}
	})
}

func certificateRows(candidateID int64, in []domain.CertificateInput) []domain.Certificate {
	return slice.Map(accepted(in), func(idx int, src domain.CertificateInput) domain.Certificate {
		return domain.Certificate{
			CandidateID:  candidateID,
			CertID:       idx + 1,
			CertName:     sanitize.Text(src.CertName),
			Organization: sanitize.Text(src.Organization),
			IssueDate:    src.IssueDate,
			CertURL:      strings.TrimSpace(src.CertURL),
		}
	})
}

func languageRows(candidateID int64, in []domain.ForeignLanguageInput) []domain.ForeignLanguage {
	return slice.Map(accepted(in), func(idx int, src domain.ForeignLanguageInput) domain.ForeignLanguage {
		level := sanitize.Text(src.Level)
		if level == "" {
			level = domain.DefaultLanguageLevel
		}
		return domain.ForeignLanguage{
			CandidateID: candidateID,
			LangID:      idx + 1,
			Language:    sanitize.Text(src.Language),
			Level:       level,
		}
	})
}

func cvRows(candidateID int64, in []domain.CVInput) []domain.CV {
	return slice.Map(accepted(in), func(idx int, src domain.CVInput) domain.CV {
		return domain.CV{
			CandidateID: candidateID,
			CvID:        idx + 1,
			CvName:      sanitize.Text(src.CvName),
			CvURL:       strings.TrimSpace(src.CvURL),
			IsPublic:    src.IsPublic,
		}
	})
}

// TotalYearsOfExperience sums the spans of experiences that carry both
// dates, in years of 365.25 days rounded to one decimal. When no span adds
// up to a positive total the supplied value is used, else 0. The result is
// capped at maxYearsOfExperience.
func TotalYearsOfExperience(experiences []domain.Experience, supplied *float64) float64 {
	var days float64
	for _, e := range experiences {
		if !e.StartDate.Valid || !e.EndDate.Valid {
			continue
		}
		days += e.EndDate.Sub(e.StartDate).Hours() / 24
	}
	if years := days / daysPerYear; years > 0 {
		return math.Min(math.Round(years*10)/10, maxYearsOfExperience)
	}
	if supplied != nil && *supplied > 0 {
		return *supplied
	}
	return 0
}
