// Package grpc содержит реализацию gRPC сервера сервиса коротких ссылок
package grpc

import (
	"context"
	"errors"

	"github.com/tempizhere/golinkup/internal/grpc/proto"
	"github.com/tempizhere/golinkup/internal/models"
	"github.com/tempizhere/golinkup/internal/repository"
	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server реализует gRPC сервер сервиса коротких ссылок
type Server struct {
	proto.UnimplementedLinksServiceServer
	svc    *service.LinkService
	auth   *service.AuthService
	db     repository.Database
	logger *zap.Logger
}

// NewServer создаёт новый gRPC сервер
func NewServer(svc *service.LinkService, auth *service.AuthService, db repository.Database, logger *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		auth:   auth,
		db:     db,
		logger: logger,
	}
}

// Register обрабатывает регистрацию пользователя
func (s *Server) Register(ctx context.Context, req *proto.RegisterRequest) (*proto.RegisterResponse, error) {
	user, token, err := s.auth.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return nil, status.Error(codes.InvalidArgument, "username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			return nil, status.Error(codes.AlreadyExists, "username already exists")
		default:
			return nil, s.internalError("register", err)
		}
	}
	return &proto.RegisterResponse{UserID: user.ID, Token: token}, nil
}

// Login обрабатывает вход пользователя
func (s *Server) Login(ctx context.Context, req *proto.LoginRequest) (*proto.LoginResponse, error) {
	user, token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, s.internalError("login", err)
	}
	return &proto.LoginResponse{UserID: user.ID, Token: token}, nil
}

// CreateLink обрабатывает создание короткой ссылки
func (s *Server) CreateLink(ctx context.Context, req *proto.CreateLinkRequest) (*proto.CreateLinkResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.svc.CreateLink(userID, req.OriginalURL, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return nil, status.Error(codes.InvalidArgument, "original URL and slug are required")
		case errors.Is(err, service.ErrSlugTaken):
			return nil, status.Error(codes.AlreadyExists, "slug already in use")
		default:
			return nil, s.internalError("create link", err)
		}
	}

	return &proto.CreateLinkResponse{
		ShortURL: s.svc.ShortURL(link.Slug),
		Slug:     link.Slug,
	}, nil
}

// ListLinks обрабатывает запрос списка ссылок пользователя
func (s *Server) ListLinks(ctx context.Context, req *proto.ListLinksRequest) (*proto.ListLinksResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.svc.ListLinks(userID)
	if err != nil {
		return nil, s.internalError("list links", err)
	}

	resp := &proto.ListLinksResponse{Links: make([]proto.LinkInfo, len(links))}
	for i, l := range links {
		resp.Links[i] = s.linkInfo(l)
	}
	return resp, nil
}

// ResolveLink обрабатывает переход по слагу: счётчик переходов
// увеличивается так же, как при HTTP-редиректе
func (s *Server) ResolveLink(ctx context.Context, req *proto.ResolveLinkRequest) (*proto.ResolveLinkResponse, error) {
	if req.Slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}

	originalURL, err := s.svc.ResolveAndCount(req.Slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return &proto.ResolveLinkResponse{Found: false}, nil
		}
		return nil, s.internalError("resolve link", err)
	}

	return &proto.ResolveLinkResponse{OriginalURL: originalURL, Found: true}, nil
}

// GetLinkStats обрабатывает запрос статистики по ссылке
func (s *Server) GetLinkStats(ctx context.Context, req *proto.GetLinkStatsRequest) (*proto.GetLinkStatsResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.svc.GetStats(req.Slug, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return nil, status.Error(codes.NotFound, "link not found")
		case errors.Is(err, service.ErrForbidden):
			return nil, status.Error(codes.PermissionDenied, "not the link owner")
		default:
			return nil, s.internalError("get link stats", err)
		}
	}

	return &proto.GetLinkStatsResponse{Link: s.linkInfo(link)}, nil
}

// Ping обрабатывает проверку состояния сервиса
func (s *Server) Ping(ctx context.Context, req *proto.PingRequest) (*proto.PingResponse, error) {
	if s.db == nil {
		return &proto.PingResponse{DatabaseAvailable: false}, nil
	}
	if err := s.db.Ping(); err != nil {
		return &proto.PingResponse{DatabaseAvailable: false}, nil
	}
	return &proto.PingResponse{DatabaseAvailable: true}, nil
}

// linkInfo преобразует модель ссылки в ответ сервиса
func (s *Server) linkInfo(l models.Link) proto.LinkInfo {
	return proto.LinkInfo{
		ShortURL:    s.svc.ShortURL(l.Slug),
		OriginalURL: l.OriginalURL,
		Slug:        l.Slug,
		Clicks:      l.Clicks,
	}
}

// internalError логирует ошибку и возвращает обобщённый статус
func (s *Server) internalError(op string, err error) error {
	s.logger.Error("Internal error", zap.String("op", op), zap.Error(err))
	return status.Error(codes.Internal, "internal server error")
}
