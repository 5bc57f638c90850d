package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"drivelux/internal/db"
	"drivelux/internal/entities"
	"drivelux/internal/errors"
	"drivelux/internal/repository"
	"drivelux/internal/utils"
)

// highOccupancyShare is the fraction of remaining units at or below which a
// day is flagged as high occupancy.
const highOccupancyShare = 0.2

const blockedDetailsFallback = "Not available due to an administrative block"

// AvailabilityService is the capacity engine: per-day availability checks
// and the monthly calendar aggregation, single-vehicle and fleet-wide.
type AvailabilityService struct {
	store  repository.AvailabilityStore
	logger *zap.Logger
}

func NewAvailabilityService(store repository.AvailabilityStore, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{store: store, logger: logger}
}

// CheckDayAvailability decides whether the vehicle has capacity on the
// calendar day containing date. Admin blocks dominate; otherwise active
// reservations are counted against the vehicle's unit total.
func (s *AvailabilityService) CheckDayAvailability(vehicleID int, date time.Time) (*entities.DayAvailability, error) {
	vehicle, err := s.store.GetVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
	}

	start, end := utils.DayRange(date)

	unitsTotal, err := s.store.GetUnitCount(vehicleID)
	if err != nil {
		return nil, err
	}

	result := &entities.DayAvailability{
		VehicleID:  vehicleID,
		Date:       utils.DayKey(start),
		UnitsTotal: unitsTotal,
	}

	blocks, err := s.store.GetBlocksInRange(vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		block := blocks[0]
		reason := block.Reason
		details := block.Details
		if details == "" {
			details = blockedDetailsFallback
		}
		result.Available = false
		result.BlockedBy = &reason
		result.Details = details
		result.UnitsAvailable = 0
		return result, nil
	}

	activeCount, err := s.store.CountActiveReservations(vehicleID, start, end)
	if err != nil {
		return nil, err
	}

	if activeCount >= unitsTotal {
		reserved := db.ReasonReserved
		result.Available = false
		result.BlockedBy = &reserved
		result.Details = fmt.Sprintf("%d/%d units reserved", activeCount, unitsTotal)
		result.UnitsAvailable = 0
		return result, nil
	}

	result.Available = true
	result.UnitsAvailable = unitsTotal - activeCount
	return result, nil
}

// GetMonthlyCalendar builds the day-by-day calendar for the given month.
// With a vehicle id it covers that vehicle alone; without one it aggregates
// the whole active fleet.
func (s *AvailabilityService) GetMonthlyCalendar(year, month int, vehicleID *int) (*entities.MonthlyCalendar, error) {
	if month < 1 || month > 12 {
		return nil, errors.Validation(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if vehicleID != nil {
		return s.buildVehicleMonth(year, time.Month(month), *vehicleID)
	}
	return s.buildFleetMonth(year, time.Month(month))
}

// buildVehicleMonth is the single source of truth for per-vehicle day
// computation. The month's blocks, reservations and unit count are fetched
// once and indexed by day key; no query runs inside the day loop.
func (s *AvailabilityService) buildVehicleMonth(year int, month time.Month, vehicleID int) (*entities.MonthlyCalendar, error) {
	vehicle, err := s.store.GetVehicleByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
	}

	first, afterLast := utils.MonthRange(year, month)

	blocks, err := s.store.GetBlocksInRange(vehicleID, first, afterLast)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.GetActiveReservationsInRange(vehicleID, first, afterLast)
	if err != nil {
		return nil, err
	}
	unitsTotal, err := s.store.GetUnitCount(vehicleID)
	if err != nil {
		return nil, err
	}

	blockByDay := make(map[string]db.AvailabilityBlock, len(blocks))
	for _, b := range blocks {
		key := utils.DayKey(b.Day)
		if _, seen := blockByDay[key]; !seen {
			blockByDay[key] = b
		}
	}
	reservationCountByDay := make(map[string]int)
	for _, r := range reservations {
		reservationCountByDay[utils.DayKey(r.EventDate)]++
	}

	days := make([]entities.CalendarDayCell, 0, utils.DaysInMonth(year, month))
	for day := first; day.Before(afterLast); day = day.AddDate(0, 0, 1) {
		key := utils.DayKey(day)
		block, isBlocked := blockByDay[key]
		reservationCount := reservationCountByDay[key]

		unitsAvailable := 0
		if !isBlocked {
			unitsAvailable = unitsTotal - reservationCount
			if unitsAvailable < 0 {
				unitsAvailable = 0
			}
		}

		cell := entities.CalendarDayCell{
			Date:             key,
			IsBlocked:        isBlocked,
			ReservationCount: reservationCount,
			UnitsAvailable:   unitsAvailable,
			UnitsTotal:       unitsTotal,
		}
		cell.ColorClass, cell.StatusLabel = classifyDay(isBlocked, unitsAvailable, unitsTotal, reservationCount)
		if isBlocked {
			reason := block.Reason
			cell.Reason = &reason
			cell.Details = block.Details
			if cell.Details == "" {
				cell.Details = blockedDetailsFallback
			}
		}
		days = append(days, cell)
	}

	return &entities.MonthlyCalendar{
		VehicleID:  &vehicleID,
		Year:       year,
		Month:      int(month),
		TotalUnits: unitsTotal,
		Days:       days,
	}, nil
}

func (s *AvailabilityService) buildFleetMonth(year int, month time.Month) (*entities.MonthlyCalendar, error) {
	first, afterLast := utils.MonthRange(year, month)

	vehicles, err := s.store.ListActiveVehicles()
	if err != nil {
		return nil, err
	}
	blocks, err := s.store.GetBlocksInRange(0, first, afterLast)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.GetActiveReservationsInRange(0, first, afterLast)
	if err != nil {
		return nil, err
	}

	vehicleIDs := make([]int, 0, len(vehicles))
	for _, v := range vehicles {
		vehicleIDs = append(vehicleIDs, v.ID)
	}
	unitCounts, err := s.store.GetUnitCounts(vehicleIDs)
	if err != nil {
		return nil, err
	}

	activeIDs := make(map[int]bool, len(vehicles))
	for _, v := range vehicles {
		activeIDs[v.ID] = true
	}

	type vehicleDay struct {
		vehicleID int
		key       string
	}
	blockedDays := make(map[vehicleDay]bool, len(blocks))
	for _, b := range blocks {
		blockedDays[vehicleDay{b.VehicleID, utils.DayKey(b.Day)}] = true
	}
	reservationCounts := make(map[vehicleDay]int)
	reservationsByDay := make(map[string][]db.Reservation)
	for _, r := range reservations {
		if !activeIDs[r.VehicleID] {
			continue
		}
		key := utils.DayKey(r.EventDate)
		reservationCounts[vehicleDay{r.VehicleID, key}]++
		reservationsByDay[key] = append(reservationsByDay[key], r)
	}

	fleetUnits := 0
	for _, v := range vehicles {
		fleetUnits += unitCountOrDefault(unitCounts, v.ID)
	}

	days := make([]entities.CalendarDayCell, 0, utils.DaysInMonth(year, month))
	for day := first; day.Before(afterLast); day = day.AddDate(0, 0, 1) {
		key := utils.DayKey(day)

		totalUnits := 0
		totalBlockedUnits := 0
		totalReservations := 0
		breakdown := make([]entities.VehicleDayBreakdown, 0, len(vehicles))

		for _, v := range vehicles {
			units := unitCountOrDefault(unitCounts, v.ID)
			blocked := blockedDays[vehicleDay{v.ID, key}]
			count := reservationCounts[vehicleDay{v.ID, key}]

			totalUnits += units
			if blocked {
				totalBlockedUnits += units
			}
			totalReservations += count

			available := 0
			if !blocked {
				available = units - count
				if available < 0 {
					available = 0
				}
			}
			breakdown = append(breakdown, entities.VehicleDayBreakdown{
				VehicleID:        v.ID,
				VehicleName:      v.Name,
				UnitsTotal:       units,
				IsBlocked:        blocked,
				ReservationCount: count,
				UnitsAvailable:   available,
			})
		}

		unitsAvailable := totalUnits - totalBlockedUnits - totalReservations
		if unitsAvailable < 0 {
			unitsAvailable = 0
		}

		cell := entities.CalendarDayCell{
			Date:             key,
			IsBlocked:        totalBlockedUnits > 0,
			ReservationCount: totalReservations,
			UnitsAvailable:   unitsAvailable,
			UnitsTotal:       totalUnits,
			PerVehicle:       breakdown,
			Reservations:     reservationsOfDay(reservationsByDay[key]),
		}
		cell.ColorClass, cell.StatusLabel = classifyDay(totalBlockedUnits > 0, unitsAvailable, totalUnits, totalReservations)
		days = append(days, cell)
	}

	return &entities.MonthlyCalendar{
		VehicleID:  nil,
		Year:       year,
		Month:      int(month),
		TotalUnits: fleetUnits,
		Days:       days,
	}, nil
}

// classifyDay applies the four-tier occupancy rule, first match wins:
// red when blocked or out of units, yellow at or below 20% remaining,
// blue when anything is booked, green otherwise.
func classifyDay(isBlocked bool, unitsAvailable, unitsTotal, reservationCount int) (colorClass, statusLabel string) {
	switch {
	case isBlocked || unitsAvailable == 0:
		return entities.ColorBlocked, entities.LabelBlocked
	case float64(unitsAvailable) <= float64(unitsTotal)*highOccupancyShare:
		return entities.ColorHighOccupancy, entities.LabelHighOccupancy
	case reservationCount > 0:
		return entities.ColorPartial, entities.LabelPartial
	default:
		return entities.ColorAvailable, entities.LabelAvailable
	}
}

func unitCountOrDefault(counts map[int]int, vehicleID int) int {
	if q, ok := counts[vehicleID]; ok && q > 0 {
		return q
	}
	return 1
}

func reservationsOfDay(reservations []db.Reservation) []entities.ReservationOfDay {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]entities.ReservationOfDay, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, entities.ReservationOfDay{
			ReservationID: r.ID,
			VehicleName:   r.VehicleName,
			PackageName:   r.PackageName,
			CustomerName:  r.CustomerName,
			Status:        r.Status,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
		})
	}
	return out
}
