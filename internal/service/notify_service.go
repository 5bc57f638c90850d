package service

import (
	"fmt"

	"go.uber.org/zap"

	"drivelux/internal/db"
	"drivelux/internal/repository"
	"drivelux/internal/utils"
)

// NotifyService warns customers whose active reservations land on a day an
// admin has just blocked, so the operations team can rebook them.
type NotifyService struct {
	availability repository.AvailabilityStore
	sender       Sender
	logger       *zap.Logger
}

func NewNotifyService(availability repository.AvailabilityStore, sender Sender, logger *zap.Logger) *NotifyService {
	return &NotifyService{
		availability: availability,
		sender:       sender,
		logger:       logger,
	}
}

// NotifyBlockedDay emails and texts every customer holding an active
// reservation for the blocked vehicle and day. Delivery failures are logged
// and never surfaced to the admin request that created the block.
func (n *NotifyService) NotifyBlockedDay(block *db.AvailabilityBlock, vehicleName string) {
	start, end := utils.DayRange(block.Day)
	reservations, err := n.availability.GetActiveReservationsInRange(block.VehicleID, start, end)
	if err != nil {
		n.logger.Error("could not load reservations for blocked day",
			zap.String("block_id", block.ID),
			zap.Error(err))
		return
	}
	if len(reservations) == 0 {
		return
	}

	dayKey := utils.DayKey(block.Day)
	for _, res := range reservations {
		subject := fmt.Sprintf("Your DriveLux reservation on %s needs attention", dayKey)
		body := fmt.Sprintf(
			"Hello %s,\n\n"+
				"The vehicle %s assigned to your reservation on %s has become unavailable (%s).\n"+
				"Our team will contact you shortly to arrange an alternative.\n\n"+
				"DriveLux Chauffeur Service",
			res.CustomerName, vehicleName, dayKey, block.Reason,
		)
		sms := fmt.Sprintf("DriveLux: your reservation on %s is affected by a vehicle change. Check your email for details.", dayKey)

		if res.CustomerEmail != "" {
			if err := n.sender.SendEmail(res.CustomerEmail, res.CustomerName, subject, body); err != nil {
				n.logger.Warn("blocked-day email failed",
					zap.Int("reservation_id", res.ID),
					zap.Error(err))
			}
		}
		if res.CustomerPhone != "" {
			if err := n.sender.SendSMS(res.CustomerPhone, sms); err != nil {
				n.logger.Warn("blocked-day SMS failed",
					zap.Int("reservation_id", res.ID),
					zap.Error(err))
			}
		}
	}
}
