package cron

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/qs3c/travelmart_server/internal/service"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper 到期扫描
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time, dryRun bool) (*service.SweepResult, error)
}

type Service struct {
	sweeper  Sweeper
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewService(sweeper Sweeper, interval time.Duration) *Service {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Service{
		sweeper:  sweeper,
		interval: interval,
		stopChan: make(chan struct{}),
		now:      time.Now,
	}
}

// Start 启动定时任务，启动时先扫描一次
func (s *Service) Start() {
	go s.runSweep()
	log.Printf("Cron service started (expiry sweep every %s)", s.interval)
}

// Stop 停止定时任务，可重复调用
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		log.Println("Cron service stopped")
	})
}

func (s *Service) runSweep() {
	s.sweepOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Service) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	result, err := s.sweeper.Sweep(ctx, s.now(), false)
	if err != nil {
		log.Printf("Expiry sweep failed: %v", err)
		return
	}
	if result.Expired > 0 || result.Reminders > 0 {
		log.Printf("Expiry sweep: expired=%d, reminders=%d", result.Expired, result.Reminders)
	}
}

// RunNow 立即执行一次扫描（用于测试或手动触发）
func (s *Service) RunNow(ctx context.Context, dryRun bool) (*service.SweepResult, error) {
	log.Println("Manual expiry sweep triggered...")
	return s.sweeper.Sweep(ctx, s.now(), dryRun)
}
