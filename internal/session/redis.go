package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so multiple server instances agree on
// idle state and revocation. Keys expire at the max session lifetime.
type RedisStore struct {
	client *redis.Client
	maxTTL time.Duration
}

func NewRedisStore(ctx context.Context, host, port, pass string, db int, timeout, maxTTL time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s:%s): %w", host, port, err)
	}
	return &RedisStore{client: client, maxTTL: maxTTL}, nil
}

func (s *RedisStore) Create(ctx context.Context, userID string, now time.Time) (Session, error) {
	sess := Session{ID: uuid.NewString(), UserID: userID, StartedAt: now, LastActivity: now}
	if err := s.save(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, s.maxTTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Touch(ctx context.Context, id string, now time.Time) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.LastActivity = now
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	// KeepTTL: the max-lifetime expiry set at login must not slide.
	return s.client.Set(ctx, sessionKeyPrefix+id, data, redis.KeepTTL).Err()
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
