package middleware

import (
	"context"
	"net/http"
	"strings"

	"matka_backend/pkg/resp"
	"matka_backend/pkg/token"
)

type ctxKey struct{}

var operatorIDKey = ctxKey{}

// WithOperatorID кладет id оператора в контекст
func WithOperatorID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, operatorIDKey, id)
}

// OperatorIDFromContext id оператора, который объявляет результат
func OperatorIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(operatorIDKey).(int)
	return id, ok
}

// Auth проверяет Bearer access токен и кладет id оператора в контекст
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := token.VerifyToken(tokenStr, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			operatorID, err := token.OperatorID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperatorID(r.Context(), operatorID)))
		})
	}
}
