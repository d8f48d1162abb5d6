package service

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/travelmart_server/internal/model"
	"github.com/qs3c/travelmart_server/internal/pkg/lifecycle"
	"github.com/qs3c/travelmart_server/internal/pkg/metrics"
	"github.com/qs3c/travelmart_server/internal/pkg/pubsub"
	"github.com/qs3c/travelmart_server/internal/pkg/queue"
	"github.com/qs3c/travelmart_server/internal/repository"
)

const defaultReminderWindow = 24 * time.Hour

// NotificationQueue 邮件通知队列
type NotificationQueue interface {
	Push(ctx context.Context, msg *queue.NotificationMessage) error
}

// SweepResult 一次扫描的结果
type SweepResult struct {
	Expired   int64 `json:"expired"`
	Reminders int   `json:"reminders"`
	DryRun    bool  `json:"dry_run"`
}

// ExpiryService 把已过期记录写回 expired，并投递到期提醒
type ExpiryService struct {
	adRepo         *repository.AdvertisementRepository
	notifications  NotificationQueue
	events         EventPublisher
	reminderWindow time.Duration
}

func NewExpiryService(adRepo *repository.AdvertisementRepository, notifications NotificationQueue, events EventPublisher, reminderWindow time.Duration) *ExpiryService {
	if reminderWindow <= 0 {
		reminderWindow = defaultReminderWindow
	}
	return &ExpiryService{
		adRepo:         adRepo,
		notifications:  notifications,
		events:         events,
		reminderWindow: reminderWindow,
	}
}

// Sweep 执行一次扫描，dryRun 只统计不写入
func (s *ExpiryService) Sweep(ctx context.Context, now time.Time, dryRun bool) (*SweepResult, error) {
	newlyExpired, err := s.adRepo.ListNewlyExpired(now)
	if err != nil {
		return nil, err
	}
	expiring, err := s.adRepo.ListExpiringBefore(now, now.Add(s.reminderWindow))
	if err != nil {
		return nil, err
	}

	if dryRun {
		return &SweepResult{
			Expired:   int64(len(newlyExpired)),
			Reminders: len(expiring),
			DryRun:    true,
		}, nil
	}

	expired, err := s.adRepo.MarkExpired(now)
	if err != nil {
		return nil, err
	}
	metrics.ExpirySweeps.WithLabelValues("expired").Add(float64(expired))

	for _, ad := range newlyExpired {
		s.notify(ctx, queue.KindSlotExpired, ad)
		if s.events != nil {
			evt := &pubsub.AdvertisementEvent{
				Type:            pubsub.EventAdvertisementUpdated,
				UserID:          ad.UserID,
				AdvertisementID: ad.ID,
				Action:          "expire",
				Status:          model.AdStatusExpired,
				Phase:           string(lifecycle.PhaseExpired),
				ExpiresAt:       ad.ExpiresAt,
				PublishedAdID:   ad.PublishedAdID,
			}
			if err := s.events.Publish(ctx, evt); err != nil {
				log.Printf("Failed to publish expiry event for advertisement %d: %v", ad.ID, err)
			}
		}
	}

	ids := make([]int64, 0, len(expiring))
	for _, ad := range expiring {
		if s.notify(ctx, queue.KindExpiryReminder, ad) {
			ids = append(ids, ad.ID)
		}
	}
	if err := s.adRepo.MarkReminderSent(ids, now); err != nil {
		return nil, err
	}
	metrics.ExpirySweeps.WithLabelValues("reminder").Add(float64(len(ids)))

	return &SweepResult{Expired: expired, Reminders: len(ids)}, nil
}

func (s *ExpiryService) notify(ctx context.Context, kind string, ad *model.Advertisement) bool {
	if s.notifications == nil {
		return false
	}
	err := s.notifications.Push(ctx, &queue.NotificationMessage{
		Kind:            kind,
		AdvertisementID: ad.ID,
		UserID:          ad.UserID,
		SlotID:          ad.SlotID,
		Category:        ad.Category,
		ExpiresAt:       ad.ExpiresAt,
	})
	if err != nil {
		log.Printf("Failed to enqueue %s notification for advertisement %d: %v", kind, ad.ID, err)
		return false
	}
	return true
}
