package simulation

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/domain"
)

// Publisher 把消息投递到指定队列
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type AMQPPublisher struct {
	channel *amqp.Channel
	timeout time.Duration
}

func NewAMQPPublisher(ch *amqp.Channel, timeout time.Duration) *AMQPPublisher {
	return &AMQPPublisher{
		channel: ch,
		timeout: timeout,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",
		queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// DeclareQueue 声明一个持久化队列，api、worker 和 mail 进程都会调用，重复声明没有副作用
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // 队列名称
		true,  // 是否持久化
		false, // 是否自动删除
		false, // 是否独占
		false, // 是否不等待
		nil,   // 额外参数
	)
}

// JobMessage 任务队列中的消息，只携带任务 ID，任务内容从 Store 中读取
type JobMessage struct {
	JobID string `json:"jobID"`
}

func publishJSON(ctx context.Context, p Publisher, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, queue, body)
}

func PublishJob(ctx context.Context, p Publisher, queue string, jobID string) error {
	return publishJSON(ctx, p, queue, JobMessage{JobID: jobID})
}

func PublishMail(ctx context.Context, p Publisher, queue string, msg domain.MailMessage) error {
	return publishJSON(ctx, p, queue, msg)
}
