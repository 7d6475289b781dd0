// Package proto содержит интерфейс gRPC сервиса коротких ссылок
package proto

import (
	"context"

	"google.golang.org/grpc"
)

// LinksServiceServer представляет интерфейс gRPC сервиса
type LinksServiceServer interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error)
	ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error)
	ResolveLink(ctx context.Context, req *ResolveLinkRequest) (*ResolveLinkResponse, error)
	GetLinkStats(ctx context.Context, req *GetLinkStatsRequest) (*GetLinkStatsResponse, error)
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)
}

// UnimplementedLinksServiceServer предоставляет базовую реализацию интерфейса
type UnimplementedLinksServiceServer struct{}

// Register предоставляет базовую реализацию регистрации пользователя
func (UnimplementedLinksServiceServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	return nil, nil
}

// Login предоставляет базовую реализацию входа
func (UnimplementedLinksServiceServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return nil, nil
}

// CreateLink предоставляет базовую реализацию создания ссылки
func (UnimplementedLinksServiceServer) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	return nil, nil
}

// ListLinks предоставляет базовую реализацию списка ссылок пользователя
func (UnimplementedLinksServiceServer) ListLinks(ctx context.Context, req *ListLinksRequest) (*ListLinksResponse, error) {
	return nil, nil
}

// ResolveLink предоставляет базовую реализацию перехода по слагу
func (UnimplementedLinksServiceServer) ResolveLink(ctx context.Context, req *ResolveLinkRequest) (*ResolveLinkResponse, error) {
	return nil, nil
}

// GetLinkStats предоставляет базовую реализацию получения статистики ссылки
func (UnimplementedLinksServiceServer) GetLinkStats(ctx context.Context, req *GetLinkStatsRequest) (*GetLinkStatsResponse, error) {
	return nil, nil
}

// Ping предоставляет базовую реализацию проверки состояния сервиса
func (UnimplementedLinksServiceServer) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return nil, nil
}

// RegisterLinksServiceServer регистрирует реализацию сервиса в gRPC сервере
func RegisterLinksServiceServer(s *grpc.Server, srv LinksServiceServer) {
	// В реальном проекте это было бы автоматически сгенерировано protoc
	// Здесь заглушка для демонстрации
}
