package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"drivelux/internal/db"
	"drivelux/internal/errors"
	"drivelux/internal/repository"
	"drivelux/internal/utils"
)

// BlockService manages the lifecycle of manual availability blocks. Blocks
// are immutable; changing one means delete and recreate.
type BlockService struct {
	blocks       repository.BlockStore
	availability repository.AvailabilityStore
	notifier     *NotifyService
	logger       *zap.Logger
}

func NewBlockService(blocks repository.BlockStore, availability repository.AvailabilityStore, notifier *NotifyService, logger *zap.Logger) *BlockService {
	return &BlockService{
		blocks:       blocks,
		availability: availability,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateBlock validates and persists an admin block. All checks run before
// the write; the storage-level unique index closes the remaining race
// between concurrent creations for the same vehicle and day.
func (s *BlockService) CreateBlock(vehicleID int, date time.Time, reason db.BlockReason, details, createdBy string) (*db.AvailabilityBlock, error) {
	day := utils.StartOfDay(date)
	today := utils.StartOfDay(time.Now())
	if !day.After(today) {
		return nil, errors.Validation("only future dates can be blocked")
	}

	vehicle, err := s.availability.GetVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
	}

	exists, err := s.blocks.BlockExists(vehicleID, day)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict("a block already exists for this vehicle on this date")
	}

	block := &db.AvailabilityBlock{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		Day:       day,
		Reason:    reason,
		Details:   details,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.blocks.CreateBlock(block); err != nil {
		if err == repository.ErrDuplicateBlock {
			return nil, errors.Conflict("a block already exists for this vehicle on this date")
		}
		s.logger.Error("failed to create availability block",
			zap.Int("vehicle_id", vehicleID),
			zap.String("day", utils.DayKey(day)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("availability block created",
		zap.String("block_id", block.ID),
		zap.Int("vehicle_id", vehicleID),
		zap.String("day", utils.DayKey(day)),
		zap.String("reason", string(reason)))

	if s.notifier != nil {
		go s.notifier.NotifyBlockedDay(block, vehicle.Name)
	}
	return block, nil
}

func (s *BlockService) DeleteBlock(id string) error {
	deleted, err := s.blocks.DeleteBlock(id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound(fmt.Sprintf("availability block %s not found", id))
	}
	s.logger.Info("availability block deleted", zap.String("block_id", id))
	return nil
}

// ListFutureBlocks returns the vehicle's blocks from today onwards, date
// ascending.
func (s *BlockService) ListFutureBlocks(vehicleID int) ([]db.AvailabilityBlock, error) {
	vehicle, err := s.availability.GetVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
	}
	return s.blocks.ListBlocksFrom(vehicleID, utils.StartOfDay(time.Now()))
}
