package service

import (
	"context"
	"fmt"
	"time"

	"ai-mathteach-be/internal/pkg/apperrors"
	"ai-mathteach-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IUsageService interface {
	// CheckAndIncrement counts one generation against the user's daily
	// quota. Returns LimitExceededError when the quota is already spent.
	CheckAndIncrement(ctx context.Context, userId uuid.UUID) error
	Remaining(ctx context.Context, userId uuid.UUID) (used int, limit int, err error)
}

type usageService struct {
	rdb        *redis.Client
	dailyLimit int
	logger     logger.ILogger
}

func NewUsageService(rdb *redis.Client, dailyLimit int, log logger.ILogger) IUsageService {
	return &usageService{
		rdb:        rdb,
		dailyLimit: dailyLimit,
		logger:     log,
	}
}

func (s *usageService) key(userId uuid.UUID, now time.Time) string {
	return fmt.Sprintf("usage:generations:%s:%s", userId, now.UTC().Format("2006-01-02"))
}

func (s *usageService) CheckAndIncrement(ctx context.Context, userId uuid.UUID) error {
	if s.rdb == nil || s.dailyLimit <= 0 {
		return nil
	}

	now := time.Now()
	key := s.key(userId, now)

	used, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Quota accounting must not take the generation path down with it
		s.logger.Warn("UsageService", "Quota check unavailable, allowing request", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil
	}
	resetAt := nextMidnightUTC(now)
	if used == 1 {
		s.rdb.Expire(ctx, key, time.Until(resetAt))
	}

	if int(used) > s.dailyLimit {
		return apperrors.NewLimitExceededError(s.dailyLimit, int(used)-1, resetAt)
	}
	return nil
}

func (s *usageService) Remaining(ctx context.Context, userId uuid.UUID) (int, int, error) {
	if s.rdb == nil || s.dailyLimit <= 0 {
		return 0, 0, nil
	}

	used, err := s.rdb.Get(ctx, s.key(userId, time.Now())).Int()
	if err != nil && err != redis.Nil {
		return 0, s.dailyLimit, err
	}
	return used, s.dailyLimit, nil
}

func nextMidnightUTC(now time.Time) time.Time {
	utc := now.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
