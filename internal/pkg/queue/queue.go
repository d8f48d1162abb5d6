package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 通知类型
const (
	KindExpiryReminder = "expiry_reminder"
	KindSlotExpired    = "slot_expired"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// NotificationMessage 广告位到期相关通知
type NotificationMessage struct {
	Kind            string     `json:"kind"`
	AdvertisementID int64      `json:"advertisement_id"`
	UserID          int64      `json:"user_id"`
	SlotID          string     `json:"slot_id"`
	Category        string     `json:"category"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	EnqueuedAt      time.Time  `json:"enqueued_at"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push 加入队列
func (q *Queue) Push(ctx context.Context, msg *NotificationMessage) error {
	if msg.EnqueuedAt.IsZero() {
		msg.EnqueuedAt = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop 阻塞获取，超时返回 nil, nil
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*NotificationMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg NotificationMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// Length 获取队列长度
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
