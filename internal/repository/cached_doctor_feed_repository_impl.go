package repository

import (
	"context"
	"errors"
	"time"

	domainRepo "doctor-search/internal/domain/repository"
	"doctor-search/internal/infrastructure/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const FeedCacheKey = "doctor:feed:raw"

// cachedDoctorFeedRepository keeps the raw feed body in Redis so restarts and
// manual refreshes within the TTL do not hit the upstream. Redis errors are
// logged and the upstream is used instead.
type cachedDoctorFeedRepository struct {
	next        domainRepo.DoctorFeedRepository
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewCachedDoctorFeedRepository(next domainRepo.DoctorFeedRepository, redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) domainRepo.DoctorFeedRepository {
	return &cachedDoctorFeedRepository{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

func (r *cachedDoctorFeedRepository) FetchFeed(ctx context.Context) ([]byte, error) {
	cached, err := r.redisClient.Get(ctx, FeedCacheKey).Bytes()
	switch {
	case err == nil:
		metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
		r.log.Debugf("Doctor feed served from cache: %d bytes", len(cached))
		return cached, nil
	case errors.Is(err, redis.Nil):
		metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.FeedCacheTotal.WithLabelValues("error").Inc()
		r.log.Warnf("Failed to read doctor feed cache: %+v", err)
	}

	body, err := r.next.FetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.redisClient.Set(ctx, FeedCacheKey, body, r.ttl).Err(); err != nil {
		r.log.Warnf("Failed to write doctor feed cache: %+v", err)
	}

	return body, nil
}

// Invalidate drops the cached body so the next fetch goes upstream.
func (r *cachedDoctorFeedRepository) Invalidate(ctx context.Context) error {
	return r.redisClient.Del(ctx, FeedCacheKey).Err()
}
