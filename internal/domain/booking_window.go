package domain

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// BookingWindow правила, какие даты и слоты доступны обратившимся
// Все сравнения выполняются в часовом поясе Location
type BookingWindow struct {
	Location                *time.Location
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
}

// NewBookingWindow создает окно бронирования, nil loc означает UTC
func NewBookingWindow(loc *time.Location, advanceBookingDays, minBookingNoticeMinutes int) BookingWindow {
	if loc == nil {
		loc = time.UTC
	}
	return BookingWindow{
		Location:                loc,
		AdvanceBookingDays:      advanceBookingDays,
		MinBookingNoticeMinutes: minBookingNoticeMinutes,
	}
}

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе окна
func (w BookingWindow) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, w.location())
}

// Today возвращает начало текущего дня
func (w BookingWindow) Today(now time.Time) time.Time {
	local := now.In(w.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.location())
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func (w BookingWindow) IsDateInPast(date, now time.Time) bool {
	return w.dateOnly(date).Before(w.Today(now))
}

// IsBeyondHorizon проверяет, что дата дальше AdvanceBookingDays от сегодня
func (w BookingWindow) IsBeyondHorizon(date, now time.Time) bool {
	if w.AdvanceBookingDays == 0 {
		return false
	}
	maxDate := w.Today(now).AddDate(0, 0, w.AdvanceBookingDays)
	return w.dateOnly(date).After(maxDate)
}

// IsTooLate проверяет, что до начала слота сегодня осталось меньше MinBookingNoticeMinutes
// Для других дней всегда false
func (w BookingWindow) IsTooLate(date time.Time, slot types.TimeLabel, now time.Time) bool {
	if !w.dateOnly(date).Equal(w.Today(now)) {
		return false
	}

	local := now.In(w.location())
	earliest := local.Hour()*60 + local.Minute() + w.MinBookingNoticeMinutes
	return slot.MinuteOfDay() < earliest
}

// FilterBookable убирает слоты, которые уже нельзя забронировать
func (w BookingWindow) FilterBookable(date time.Time, slots []types.TimeLabel, now time.Time) []types.TimeLabel {
	if w.IsDateInPast(date, now) {
		return []types.TimeLabel{}
	}

	result := make([]types.TimeLabel, 0, len(slots))
	for _, s := range slots {
		if w.IsTooLate(date, s, now) {
			continue
		}
		result = append(result, s)
	}
	return result
}

func (w BookingWindow) dateOnly(date time.Time) time.Time {
	local := date.In(w.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, w.location())
}

func (w BookingWindow) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}
