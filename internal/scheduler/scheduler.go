package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/service"
	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

const ingestTimeout = 2 * time.Minute

// Scheduler runs the periodic feed ingestion.
type Scheduler struct {
	cron     *cron.Cron
	ingester service.FeedIngestionService
	spec     string
}

func New(cfg *config.Config, ingester service.FeedIngestionService) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), ingester: ingester, spec: cfg.RSS.Schedule}
	if err := s.cron.AddFunc(s.spec, s.runIngestion); err != nil {
		return nil, fmt.Errorf("invalid RSS_SCHEDULE %q: %w", s.spec, err)
	}
	return s, nil
}

func (s *Scheduler) runIngestion() {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	log.Info().Msg("Running scheduled RSS fetch")
	res, err := s.ingester.Ingest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scheduled RSS fetch failed")
		return
	}
	log.Info().Int("added", res.Added).Int("total", res.Total).Msg("Scheduled RSS fetch finished")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Str("schedule", s.spec).Msg("RSS scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("RSS scheduler stopped")
}

// Register hooks the scheduler into the app lifecycle when enabled.
func Register(lc fx.Lifecycle, cfg *config.Config, ingester service.FeedIngestionService) error {
	if !cfg.RSS.Enabled {
		log.Info().Msg("RSS scheduler disabled")
		return nil
	}
	s, err := New(cfg, ingester)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
	return nil
}
