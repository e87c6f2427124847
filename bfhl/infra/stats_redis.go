package infra

import (
	"context"
	"strings"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores em hashes:
//
//	<prefix>:total                 campos ok / bad_request / server_fault (não expira)
//	<prefix>:op:<operation>        idem, por operação (não expira)
//	<prefix>:minute:<yyyymmddHHMM> idem, série por minuto (expira em ttl)
type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	ttl    time.Duration
	// "minute" (padrão) ou "none"
	bucket string
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "bfhl:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) TotalKey() string { return s.prefix + ":total" }

func (s *RedisStatsStore) OperationKey(op domain.Operation) string {
	return s.prefix + ":op:" + string(op)
}

func (s *RedisStatsStore) MinuteKey(at time.Time) string {
	return s.prefix + ":minute:" + at.UTC().Format("200601021504")
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Outcome)
	if field == "" {
		field = string(domain.OutcomeServerFault)
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.TotalKey(), field, 1)

	if ev.Operation != "" {
		pipe.HIncrBy(ctx, s.OperationKey(ev.Operation), field, 1)
	}

	if s.bucket == "minute" {
		bucketKey := s.MinuteKey(at)
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "record stats in redis")
	}
	return nil
}

var _ domain.StatsStore = (*RedisStatsStore)(nil)
