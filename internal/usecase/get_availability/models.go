package get_availability

// Request модель запроса свободных слотов на дату
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// CalendarRequest модель запроса свободных слотов за период
type CalendarRequest struct {
	From string // Начало периода YYYY-MM-DD
	To   string // Конец периода YYYY-MM-DD (включительно)
}
