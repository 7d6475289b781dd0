// Package grpc содержит интерцепторы для gRPC сервера
package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// contextKey определяет тип для ключей контекста
type contextKey string

const userIDKey contextKey = "userID"

// publicMethods - методы, доступные без сессионного токена
var publicMethods = map[string]bool{
	"/golinkup.v1.LinksService/Register":    true,
	"/golinkup.v1.LinksService/Login":       true,
	"/golinkup.v1.LinksService/ResolveLink": true,
	"/golinkup.v1.LinksService/Ping":        true,
}

// AuthInterceptor создаёт интерцептор для аутентификации пользователей.
// Сессионный JWT передаётся в метаданных authorization как Bearer-токен.
func AuthInterceptor(auth *service.AuthService, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 || !strings.HasPrefix(authHeaders[0], "Bearer ") {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		token := strings.TrimPrefix(authHeaders[0], "Bearer ")
		userID, err := auth.ParseJWT(token)
		if err != nil {
			logger.Warn("Invalid JWT token", zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		// Токен обязан указывать на существующего пользователя
		user, err := auth.CurrentUser(userID)
		if err != nil {
			logger.Warn("Token for unknown user", zap.Int64("user_id", userID), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "unknown user")
		}

		ctx = context.WithValue(ctx, userIDKey, user.ID)
		return handler(ctx, req)
	}
}

// LoggingInterceptor создаёт интерцептор для логирования вызовов
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}
		logger.Info("gRPC request",
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return resp, err
	}
}

// getUserIDFromContext извлекает ID пользователя, добавленный AuthInterceptor
func getUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, "missing user identity")
	}
	return userID, nil
}
