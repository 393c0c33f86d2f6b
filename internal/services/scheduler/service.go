// Package scheduler runs background store maintenance on a cron schedule.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/colligo/internal/common"
	"github.com/ternarybob/colligo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// Service periodically triggers Badger value-log garbage collection so the
// store does not grow unbounded under churny batch updates.
type Service struct {
	config *common.MaintenanceConfig
	store  *badgerhold.Store
	logger arbor.ILogger
	cron   *cron.Cron
}

// NewService creates a new maintenance scheduler
func NewService(config *common.MaintenanceConfig, store *badgerhold.Store, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		store:  store,
		logger: logger,
	}
}

// Start registers the maintenance job. No-op when disabled.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.logger.Debug().Msg("Store maintenance disabled")
		return nil
	}

	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddFunc(s.config.Schedule, s.runMaintenance); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.config.Schedule, err)
	}
	s.cron.Start()

	s.logger.Info().Str("schedule", s.config.Schedule).Msg("Store maintenance scheduled")
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *Service) runMaintenance() {
	s.logger.Debug().Msg("Running store maintenance")

	s.logCollectionSizes()

	// Badger recommends repeating GC until it reports nothing to collect.
	for {
		if err := s.store.Badger().RunValueLogGC(0.5); err != nil {
			// ErrNoRewrite is the normal completion signal.
			s.logger.Debug().Err(err).Msg("Value log GC finished")
			break
		}
	}
}

func (s *Service) logCollectionSizes() {
	counts := map[string]interface{}{
		"articles":   &models.Article{},
		"topics":     &models.Topic{},
		"categories": &models.Category{},
		"events":     &models.Event{},
		"notes":      &models.Note{},
	}

	event := s.logger.Info()
	for name, probe := range counts {
		count, err := s.store.Count(probe, nil)
		if err != nil {
			s.logger.Warn().Err(err).Str("collection", name).Msg("Failed to count collection")
			continue
		}
		event.Int(name, int(count))
	}
	event.Msg("Collection sizes")
}
