package set_availability

// Request модель запроса на замену открытых слотов дня
type Request struct {
	Date  string   // Дата в формате YYYY-MM-DD
	Slots []string // Время начала слотов, например ["9:00 AM", "2:00 PM"]
}
