package usecase

import (
	"context"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
)

type skillUsecase struct {
	repo  domain.SkillRepository
	cache domain.SkillCache
}

// NewSkillUsecase serves the catalog from cache when possible. cache may be nil.
func NewSkillUsecase(repo domain.SkillRepository, cache domain.SkillCache) domain.SkillUsecase {
	return &skillUsecase{repo: repo, cache: cache}
}

func (uc *skillUsecase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	if uc.cache != nil {
		skills, ok, err := uc.cache.Get(ctx)
		if err != nil {
			logger.Log.Warn("skill cache read failed", "error", err)
		} else if ok {
			return skills, nil
		}
	}

	skills, err := uc.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, skills); err != nil {
			logger.Log.Warn("skill cache write failed", "error", err)
		}
	}
	return skills, nil
}
