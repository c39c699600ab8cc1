package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"job-portal-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const skillCatalogKey = "jobportal:skills:catalog"

// DefaultSkillTTL applies when the configured TTL is not positive.
const DefaultSkillTTL = 10 * time.Minute

type skillCache struct {
	client     *goredis.Client
	expiration time.Duration
}

// NewSkillCache returns a catalog cache backed by client. A nil client
// yields a cache that always misses.
func NewSkillCache(client *goredis.Client, ttl time.Duration) domain.SkillCache {
	if ttl <= 0 {
		ttl = DefaultSkillTTL
	}
	return &skillCache{client: client, expiration: ttl}
}

func (c *skillCache) Get(ctx context.Context) ([]domain.Skill, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, skillCatalogKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("skill cache get: %w", err)
	}
	var skills []domain.Skill
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, false, fmt.Errorf("skill cache decode: %w", err)
	}
	return skills, true, nil
}

func (c *skillCache) Set(ctx context.Context, skills []domain.Skill) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, skillCatalogKey, data, c.expiration).Err()
}
