package request_booking

// Request модель запроса на бронирование слота
type Request struct {
	Email    string // Email обратившегося
	Date     string // Дата в формате YYYY-MM-DD
	TimeSlot string // Время начала слота, например "10:00 AM"
}
