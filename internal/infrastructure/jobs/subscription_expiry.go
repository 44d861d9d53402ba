package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"rimmarsa.backend/pkg/logger"
)

// ExpiryBatchSize bounds how many subscriptions one tick expires
const ExpiryBatchSize = 100

type subscriptionExpirer interface {
	ExpireDue(ctx context.Context, now time.Time, limit int) (int64, error)
}

// SubscriptionExpiryJob marks active subscriptions past their end date as expired
type SubscriptionExpiryJob struct {
	repo     subscriptionExpirer
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSubscriptionExpiryJob(repo subscriptionExpirer, interval time.Duration) *SubscriptionExpiryJob {
	return &SubscriptionExpiryJob{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called
func (j *SubscriptionExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting subscription expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Subscription expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Subscription expiry job stopped")
			return
		case <-ticker.C:
			j.expireDue(ctx)
		}
	}
}

func (j *SubscriptionExpiryJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// expireDue drains due subscriptions in batches until a batch comes back short
func (j *SubscriptionExpiryJob) expireDue(ctx context.Context) {
	now := j.now().UTC()
	var total int64
	for {
		n, err := j.repo.ExpireDue(ctx, now, ExpiryBatchSize)
		if err != nil {
			logger.Error(ctx, "Failed to expire subscriptions", zap.Error(err))
			return
		}
		total += n
		if n < ExpiryBatchSize || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		logger.Info(ctx, "Expired subscriptions", zap.Int64("count", total))
	}
}
