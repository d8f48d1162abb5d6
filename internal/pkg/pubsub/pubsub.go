package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelAdvertisementEvents = "advertisement_events"
)

// 事件类型
const (
	EventAdvertisementUpdated = "advertisement_updated"
	EventActionFailed         = "advertisement_action_failed"
)

// AdvertisementEvent 单条广告位变更，客户端据此只更新这一条
type AdvertisementEvent struct {
	Type            string     `json:"type"`
	UserID          int64      `json:"userId"`
	AdvertisementID int64      `json:"advertisementId"`
	Action          string     `json:"action"`
	Status          string     `json:"status,omitempty"`
	Phase           string     `json:"phase,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	PublishedAdID   *string    `json:"publishedAdId"`
	Error           string     `json:"error,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布事件，Type 为空时按是否有 Error 补全
func (p *Publisher) Publish(ctx context.Context, evt *AdvertisementEvent) error {
	if evt.Type == "" {
		evt.Type = EventAdvertisementUpdated
		if evt.Error != "" {
			evt.Type = EventActionFailed
		}
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal advertisement event: %w", err)
	}

	return p.client.Publish(ctx, ChannelAdvertisementEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 阻塞订阅直到 ctx 结束
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*AdvertisementEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelAdvertisementEvents)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var evt AdvertisementEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue
			}

			handler(&evt)
		}
	}
}
