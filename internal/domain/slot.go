package domain

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// DayAvailability открытые и ещё не забронированные слоты на дату
type DayAvailability struct {
	Date  time.Time
	Slots []types.TimeLabel // отсортированы хронологически
}

// IsEmpty returns true if there is nothing left to book on this date
func (d *DayAvailability) IsEmpty() bool {
	return len(d.Slots) == 0
}

// Contains проверяет наличие слота в списке
func (d *DayAvailability) Contains(slot types.TimeLabel) bool {
	for _, s := range d.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// SubtractBooked возвращает открытые слоты за вычетом забронированных, сохраняя порядок open
func SubtractBooked(open []types.TimeLabel, booked []types.TimeLabel) []types.TimeLabel {
	taken := make(map[types.TimeLabel]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	result := make([]types.TimeLabel, 0, len(open))
	for _, s := range open {
		if _, ok := taken[s]; ok {
			continue
		}
		result = append(result, s)
	}
	return result
}
