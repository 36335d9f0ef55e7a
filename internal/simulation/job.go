package simulation

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NewJob 创建一个待运行的任务，请求中没有指定随机种子时随机生成一个，以便结果可以复现
func NewJob(req Request) *Job {
	seed := rand.Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}

	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Seed:      seed,
		Request:   req,
		CreatedAt: time.Now(),
	}
}

// Submit 先保存任务再投递到任务队列，保证 worker 收到消息时一定能读到任务
func Submit(ctx context.Context, store Store, publisher Publisher, queue string, job *Job) error {
	if err := store.Save(ctx, job); err != nil {
		return err
	}

	return PublishJob(ctx, publisher, queue, job.ID)
}
