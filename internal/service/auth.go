// Package service содержит бизнес-логику работы с пользователями и ссылками
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tempizhere/golinkup/internal/models"
	"github.com/tempizhere/golinkup/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingField возвращается, если обязательное поле формы пустое
	ErrMissingField = errors.New("missing required field")
	// ErrUsernameTaken возвращается при регистрации с занятым именем
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials возвращается при неверном имени или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims представляет полезную нагрузку JWT с ID пользователя
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// AuthService реализует регистрацию, вход и разбор сессионных токенов
type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService создаёт новый экземпляр AuthService
func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register создаёт нового пользователя и возвращает его вместе с сессионным токеном.
// Пароль хранится только в виде bcrypt-хеша.
func (s *AuthService) Register(username, password string) (models.User, string, error) {
	if username == "" || password == "" {
		return models.User{}, "", ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.users.CreateUser(username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return models.User{}, "", ErrUsernameTaken
		}
		return models.User{}, "", err
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login проверяет имя и пароль и возвращает пользователя с сессионным токеном.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(username, password string) (models.User, string, error) {
	user, err := s.users.GetUserByName(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// CurrentUser возвращает пользователя по ID из сессионного токена
func (s *AuthService) CurrentUser(userID int64) (models.User, error) {
	return s.users.GetUserByID(userID)
}

// GenerateJWT создаёт подписанный токен с ID пользователя
func (s *AuthService) GenerateJWT(userID int64) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ParseJWT проверяет подпись токена и возвращает ID пользователя
func (s *AuthService) ParseJWT(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}
