package urgent

import "errors"

var (
	// ErrRequestNotFound возвращается, когда срочный запрос не найден
	ErrRequestNotFound = errors.New("urgent.repository: urgent request not found")

	// ErrStatusMismatch возвращается, когда текущий статус записи отличается от ожидаемого
	ErrStatusMismatch = errors.New("urgent.repository: current status does not match expected")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("urgent.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("urgent.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("urgent.repository: failed to scan row")
)
