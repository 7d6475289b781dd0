package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tempizhere/golinkup/internal/grpc/proto"
	"github.com/tempizhere/golinkup/internal/repository"
	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// newTestServer собирает gRPC сервер на хранилище в памяти
func newTestServer(t *testing.T) (*Server, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	auth := service.NewAuthService(repo, "test_secret", time.Hour)
	svc := service.NewLinkService(repo, "http://localhost:8080")
	return NewServer(svc, auth, nil, zap.NewNop()), repo
}

// authCtx возвращает контекст с идентичностью, как после AuthInterceptor
func authCtx(userID int64) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}

func TestServer_Register(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	// Тест 1: успешная регистрация возвращает токен
	resp, err := srv.Register(ctx, &proto.RegisterRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.UserID)

	// Тест 2: повторная регистрация
	_, err = srv.Register(ctx, &proto.RegisterRequest{Username: "alice", Password: "pw2"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	// Тест 3: пустые поля
	_, err = srv.Register(ctx, &proto.RegisterRequest{Username: "", Password: "pw"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_Login(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	_, err := srv.Register(ctx, &proto.RegisterRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)

	// Тест 1: успешный вход
	resp, err := srv.Login(ctx, &proto.LoginRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Тест 2: неверный пароль
	_, err = srv.Login(ctx, &proto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_CreateLinkAndList(t *testing.T) {
	srv, _ := newTestServer(t)
	reg, err := srv.Register(context.Background(), &proto.RegisterRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	ctx := authCtx(reg.UserID)

	// Тест 1: создание ссылки
	resp, err := srv.CreateLink(ctx, &proto.CreateLinkRequest{OriginalURL: "https://example.com", Slug: "ex1"})
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/ex1", resp.ShortURL)

	// Тест 2: слаг занят для любого пользователя
	other, err := srv.Register(context.Background(), &proto.RegisterRequest{Username: "bob", Password: "pw2"})
	assert.NoError(t, err)
	_, err = srv.CreateLink(authCtx(other.UserID), &proto.CreateLinkRequest{OriginalURL: "https://other.com", Slug: "ex1"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	// Тест 3: список ссылок владельца
	list, err := srv.ListLinks(ctx, &proto.ListLinksRequest{})
	assert.NoError(t, err)
	assert.Len(t, list.Links, 1)
	assert.Equal(t, "ex1", list.Links[0].Slug)

	// Тест 4: без идентичности запрос отклоняется
	_, err = srv.CreateLink(context.Background(), &proto.CreateLinkRequest{OriginalURL: "https://x.com", Slug: "ex2"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestServer_ResolveLink(t *testing.T) {
	srv, repo := newTestServer(t)
	reg, err := srv.Register(context.Background(), &proto.RegisterRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	_, err = srv.CreateLink(authCtx(reg.UserID), &proto.CreateLinkRequest{OriginalURL: "https://example.com", Slug: "ex1"})
	assert.NoError(t, err)

	// Тест 1: каждый вызов увеличивает счётчик
	for i := 0; i < 3; i++ {
		resp, err := srv.ResolveLink(context.Background(), &proto.ResolveLinkRequest{Slug: "ex1"})
		assert.NoError(t, err)
		assert.True(t, resp.Found)
		assert.Equal(t, "https://example.com", resp.OriginalURL)
	}
	link, err := repo.GetLinkBySlug("ex1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), link.Clicks)

	// Тест 2: неизвестный слаг
	resp, err := srv.ResolveLink(context.Background(), &proto.ResolveLinkRequest{Slug: "unknown"})
	assert.NoError(t, err)
	assert.False(t, resp.Found)

	// Тест 3: пустой слаг
	_, err = srv.ResolveLink(context.Background(), &proto.ResolveLinkRequest{Slug: ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_GetLinkStats(t *testing.T) {
	srv, _ := newTestServer(t)
	alice, err := srv.Register(context.Background(), &proto.RegisterRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	bob, err := srv.Register(context.Background(), &proto.RegisterRequest{Username: "bob", Password: "pw2"})
	assert.NoError(t, err)
	_, err = srv.CreateLink(authCtx(alice.UserID), &proto.CreateLinkRequest{OriginalURL: "https://example.com", Slug: "ex1"})
	assert.NoError(t, err)

	// Тест 1: владелец получает статистику
	resp, err := srv.GetLinkStats(authCtx(alice.UserID), &proto.GetLinkStatsRequest{Slug: "ex1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.Link.Clicks)

	// Тест 2: не владелец получает отказ
	_, err = srv.GetLinkStats(authCtx(bob.UserID), &proto.GetLinkStatsRequest{Slug: "ex1"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	// Тест 3: несуществующий слаг
	_, err = srv.GetLinkStats(authCtx(alice.UserID), &proto.GetLinkStatsRequest{Slug: "unknown"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_Ping_NoDatabase(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Ping(context.Background(), &proto.PingRequest{})
	assert.NoError(t, err)
	assert.False(t, resp.DatabaseAvailable)
}
