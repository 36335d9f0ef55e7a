package simulation

import (
	"context"
	"log/slog"
	"time"

	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
)

// ZoneSource 区域登记表的来源
type ZoneSource interface {
	GetAllZones() ([]*domain.Zone, error)
}

type Worker struct {
	zones     ZoneSource
	store     Store
	publisher Publisher
	runner    *Runner
	mailQueue string
	logger    *slog.Logger
}

func NewWorker(zones ZoneSource, store Store, publisher Publisher, runner *Runner, mailQueue string, logger *slog.Logger) *Worker {
	return &Worker{
		zones:     zones,
		store:     store,
		publisher: publisher,
		runner:    runner,
		mailQueue: mailQueue,
		logger:    logger,
	}
}

/**
 * 处理一个任务
 * 1. 已完成或已失败的任务直接忽略；running 状态说明上一次处理中途退出，重新运行
 * 2. 请求本身的问题（参数非法、区域未登记等）记为 failed，不返回错误
 * 3. 结果无法保存时改为保存 failed 状态，避免任务停留在 running
 * 4. 存储、数据库、队列的错误会返回，由调用方决定是否重新入队
 */
func (w *Worker) Process(ctx context.Context, jobID string) error {
	job, err := w.store.Get(ctx, jobID)
	if err != nil {
		return err
	}

	switch job.Status {
	case StatusCompleted, StatusFailed:
		w.logger.Info("任务已处理，跳过", slog.String("job", job.ID), slog.String("status", string(job.Status)))
		return nil
	case StatusRunning:
		w.logger.Warn("任务上次未能完成，重新运行", slog.String("job", job.ID))
	}

	// 先读取登记表，读取失败时任务仍是 pending，重新投递后可以再次处理
	zones, err := w.zones.GetAllZones()
	if err != nil {
		return err
	}

	startedAt := time.Now()
	job.Status = StatusRunning
	job.StartedAt = &startedAt
	if err := w.store.Save(ctx, job); err != nil {
		return err
	}

	result, err := w.runner.Run(RegistryFromZones(zones), &job.Request, job.Seed)

	finishedAt := time.Now()
	job.FinishedAt = &finishedAt
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		w.logger.Warn("自动分配失败", slog.String("job", job.ID), slog.String("error", err.Error()))
	} else {
		job.Status = StatusCompleted
		job.Result = result
		w.logger.Info("自动分配完成", slog.String("job", job.ID), slog.Int("targetZones", result.TargetZoneCount), slog.Duration("duration", finishedAt.Sub(startedAt)))
	}

	if err := w.store.Save(ctx, job); err != nil {
		w.logger.Error("无法保存任务结果", slog.String("job", job.ID), slog.String("error", err.Error()))

		job.Status = StatusFailed
		job.Result = nil
		job.Error = "无法保存结果: " + err.Error()
		if err := w.store.Save(ctx, job); err != nil {
			return err
		}
	}

	if job.Request.NotifyEmail != "" {
		if err := PublishMail(ctx, w.publisher, w.mailQueue, completionMail(job)); err != nil {
			// 任务本身已经完成，邮件发送失败不影响结果
			w.logger.Error("无法投递通知邮件", slog.String("job", job.ID), slog.String("error", err.Error()))
		}
	}

	return nil
}

func completionMail(job *Job) domain.MailMessage {
	data := domain.SimulationCompletedMailData{
		JobID:  job.ID,
		Status: string(job.Status),
		Error:  job.Error,
	}

	if job.Result != nil {
		data.TargetZoneCount = job.Result.TargetZoneCount
		if job.Result.Swarm != nil {
			data.SwarmFitness = job.Result.Swarm.Final.FitnessScore
			data.SwarmExecutionTime = job.Result.Swarm.ExecutionTime
		}
		if job.Result.Firefly != nil {
			data.FireflyFitness = job.Result.Firefly.Final.FitnessScore
			data.FireflyExecutionTime = job.Result.Firefly.ExecutionTime
		}
	}

	return domain.MailMessage{
		Type: domain.MailTypeSimulationCompleted,
		To:   job.Request.NotifyEmail,
		Data: data,
	}
}
