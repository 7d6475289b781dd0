// Package middleware содержит HTTP middleware для обработки запросов.
// Включает аутентификацию, логирование, сжатие ответов и проверку доверенных подсетей.
package middleware

import (
	"context"
	"net/http"

	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
)

// CookieName - имя куки с сессионным JWT
const CookieName = "auth_token"

// UserIDKey для хранения ID пользователя в контексте
type UserIDKey struct{}

// AuthMiddleware разбирает куку с JWT и кладёт ID пользователя в контекст.
// Анонимные запросы проходят дальше без ID: решение о доступе принимает
// обработчик или RequireAuth.
func AuthMiddleware(auth *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.ParseJWT(cookie.Value)
			if err != nil {
				logger.Warn("Invalid session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			// Токен обязан указывать на существующего пользователя
			user, err := auth.CurrentUser(userID)
			if err != nil {
				logger.Warn("Session token for unknown user", zap.Int64("user_id", userID), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey{}, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth перенаправляет анонимные запросы на главную страницу
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r); !ok {
			http.Redirect(w, r, "/?message=login+required", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey{}).(int64)
	return userID, ok
}

// SetSessionCookie устанавливает куку с сессионным JWT
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
