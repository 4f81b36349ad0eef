package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCodePending means a live code already exists for the key.
	ErrCodePending = errors.New("a code was already issued recently")
	// ErrCodeInvalid means the code is absent, expired or does not match.
	ErrCodeInvalid = errors.New("invalid or expired code")
)

// CodeStore tracks one-time verification codes with a TTL. Issue is
// first-wins within the TTL window (SetNX) so repeated requests cannot mint
// a fresh code while one is outstanding; Consume is a single GETDEL so a
// code can never be redeemed twice.
type CodeStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewCodeStore(rdb *redis.Client, ttl time.Duration, prefix string) *CodeStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if prefix == "" {
		prefix = "verify"
	}
	return &CodeStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *CodeStore) key(subject string) string {
	return s.prefix + ":" + subject
}

// Issue stores code for subject unless one is already pending.
func (s *CodeStore) Issue(ctx context.Context, subject, code string) error {
	ok, err := s.rdb.SetNX(ctx, s.key(subject), code, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("issue code for %s: %w", subject, err)
	}
	if !ok {
		return ErrCodePending
	}
	return nil
}

// Consume atomically removes and checks the code for subject.
func (s *CodeStore) Consume(ctx context.Context, subject, code string) error {
	stored, err := s.rdb.GetDel(ctx, s.key(subject)).Result()
	if err == redis.Nil {
		return ErrCodeInvalid
	}
	if err != nil {
		return fmt.Errorf("consume code for %s: %w", subject, err)
	}
	if stored != code {
		return ErrCodeInvalid
	}
	return nil
}
