package worker

import (
	"context"
	"errors"
	"time"

	"github.com/aqua-next/internal/config"
	"github.com/aqua-next/internal/logger"
	"github.com/aqua-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultMonthlyResetCheckSeconds = 300

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	resetInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, loyaltyCfg *config.LoyaltyConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	resetSeconds := defaultMonthlyResetCheckSeconds
	if loyaltyCfg != nil && loyaltyCfg.MonthlyResetCheckSeconds > 0 {
		resetSeconds = loyaltyCfg.MonthlyResetCheckSeconds
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		resetInterval: time.Duration(resetSeconds) * time.Second,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.InfluencerService != nil {
		go s.runMonthlyRolloverLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runMonthlyRolloverLoop 周期检查并归零跨月的推广员月度佣金
func (s *Service) runMonthlyRolloverLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.InfluencerService == nil {
		return
	}
	runOnce := func() {
		affected, err := s.consumer.InfluencerService.RolloverMonthlyCommission(time.Now())
		if err != nil {
			logger.Warnw("worker_monthly_rollover_failed", "error", err)
			return
		}
		if affected > 0 {
			logger.Infow("worker_monthly_rollover_done", "affected", affected)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.resetInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
