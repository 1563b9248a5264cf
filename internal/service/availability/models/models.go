package models

import (
	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// SetSlotsRequest запрос на замену набора открытых слотов дня
type SetSlotsRequest struct {
	Slots []string `json:"slots"`
}

// DayAvailabilityResponse слоты одного дня
type DayAvailabilityResponse struct {
	Date  string   `json:"date"`  // "2026-03-10"
	Slots []string `json:"slots"` // ["9:00 AM", "2:00 PM"]
}

// CalendarResponse слоты по дням за период, только дни со свободными слотами
type CalendarResponse struct {
	Days []DayAvailabilityResponse `json:"days"`
}

// FromDomainDayAvailability конвертирует domain модель в DTO
func FromDomainDayAvailability(d *domain.DayAvailability) *DayAvailabilityResponse {
	if d == nil {
		return nil
	}

	return &DayAvailabilityResponse{
		Date:  d.Date.Format(domain.DateFormat),
		Slots: types.TimeLabelStrings(d.Slots),
	}
}

// FromDomainCalendar конвертирует список дней в DTO
func FromDomainCalendar(days []*domain.DayAvailability) *CalendarResponse {
	result := make([]DayAvailabilityResponse, 0, len(days))
	for _, d := range days {
		result = append(result, *FromDomainDayAvailability(d))
	}

	return &CalendarResponse{Days: result}
}
