package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrJobNotFound = errors.New("任务不存在或已过期")

// Store 保存自动分配任务，任务只在过期时间内保留
type Store interface {
	Save(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
}

type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisStore(client *redis.Client, expiration time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		expiration: expiration,
	}
}

func jobKey(id string) string {
	return fmt.Sprintf("simulation_%s_job", id)
}

func (s *RedisStore) Save(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, jobKey(job.ID), data, s.expiration).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Job, error) {
	data, err := s.client.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	job := &Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, err
	}

	return job, nil
}
