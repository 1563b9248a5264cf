package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// Booking подтверждённое бронирование слота одним обратившимся
// Бронирования неизменяемы: нет ни обновления, ни отмены
type Booking struct {
	ID        uuid.UUID
	Date      time.Time // только дата, время 00:00 в часовом поясе записи
	TimeSlot  types.TimeLabel
	Email     string
	CreatedAt time.Time
}

