package models

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// Request модели

// CreateBookingRequest запрос на бронирование слота
type CreateBookingRequest struct {
	Email    string `json:"email"`
	Date     string `json:"date"`     // "2026-03-10"
	TimeSlot string `json:"timeSlot"` // "10:00 AM"
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`     // "2026-03-10"
	TimeSlot  string    `json:"timeSlot"` // "10:00 AM"
	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:        b.ID.String(),
		Email:     b.Email,
		Date:      b.Date.Format(domain.DateFormat),
		TimeSlot:  b.TimeSlot.String(),
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}

	return &BookingListResponse{Bookings: result}
}
