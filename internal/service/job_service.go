package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"drivelux/internal/repository"
	"drivelux/internal/utils"
)

// JobService holds the scheduled maintenance tasks.
type JobService struct {
	blocks repository.BlockStore
	logger *zap.Logger
}

func NewJobService(blocks repository.BlockStore, logger *zap.Logger) *JobService {
	return &JobService{blocks: blocks, logger: logger}
}

// PurgeExpiredBlocks deletes availability blocks whose day has passed. They
// no longer affect any computation and only bloat the table.
func (s *JobService) PurgeExpiredBlocks() error {
	today := utils.StartOfDay(time.Now())
	purged, err := s.blocks.DeleteBlocksBefore(today)
	if err != nil {
		return fmt.Errorf("purge expired blocks: %w", err)
	}
	if purged > 0 {
		s.logger.Info("purged expired availability blocks", zap.Int64("count", purged))
	}
	return nil
}
