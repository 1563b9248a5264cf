package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
)

// DefaultOperatorHeader заголовок, который шлюз выставляет для аутентифицированного оператора
const DefaultOperatorHeader = "X-Operator-ID"

type operatorIDKey struct{}

// Operator пропускает запрос только при наличии заголовка оператора
// Аутентификация выполняется шлюзом, сервис лишь доверяет заголовку
func Operator(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultOperatorHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID := strings.TrimSpace(r.Header.Get(header))
			if operatorID == "" {
				handlers.RespondUnauthorized(w, "operator identity is required")
				return
			}

			ctx := context.WithValue(r.Context(), operatorIDKey{}, operatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorID возвращает идентификатор оператора из контекста
func GetOperatorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey{}).(string)
	return id, ok && id != ""
}
