// Package repository содержит интерфейсы и реализации хранилища
// пользователей и ссылок.
package repository

import (
	"database/sql"
	"errors"

	"github.com/tempizhere/golinkup/internal/models"
)

var (
	// ErrUsernameTaken возвращается при попытке создать пользователя с занятым именем
	ErrUsernameTaken = errors.New("username already exists")
	// ErrSlugTaken возвращается при попытке сохранить ссылку с занятым слагом
	ErrSlugTaken = errors.New("slug already exists")
	// ErrNotFound возвращается, если запись отсутствует в хранилище
	ErrNotFound = errors.New("record not found")
)

// UserRepository определяет интерфейс для работы с хранилищем пользователей
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с присвоенным ID
	CreateUser(username, passwordHash string) (models.User, error)
	// GetUserByName возвращает пользователя по имени
	GetUserByName(username string) (models.User, error)
	// GetUserByID возвращает пользователя по ID
	GetUserByID(id int64) (models.User, error)
}

// LinkRepository определяет интерфейс для работы с хранилищем ссылок
type LinkRepository interface {
	// SaveLink сохраняет новую ссылку с нулевым счётчиком переходов
	SaveLink(originalURL, slug string, userID int64) (models.Link, error)
	// GetLinkBySlug возвращает ссылку по слагу
	GetLinkBySlug(slug string) (models.Link, error)
	// GetLinksByUserID возвращает все ссылки, созданные пользователем
	GetLinksByUserID(userID int64) ([]models.Link, error)
	// IncrementClicks атомарно увеличивает счётчик переходов
	// и возвращает оригинальный URL
	IncrementClicks(slug string) (string, error)
	// CountStats возвращает сводную статистику по всем записям
	CountStats() (models.StatsResponse, error)
}

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// Ping проверяет соединение с базой данных
	Ping() error
	// Close закрывает соединение с базой данных
	Close() error
	// Exec выполняет SQL-команду без возврата результатов
	Exec(query string, args ...interface{}) (sql.Result, error)
	// Query выполняет SQL-запрос и возвращает результаты
	Query(query string, args ...interface{}) (*sql.Rows, error)
	// QueryRow выполняет SQL-запрос и возвращает одну строку результата
	QueryRow(query string, args ...interface{}) *sql.Row
	// Begin начинает новую транзакцию
	Begin() (*sql.Tx, error)
}
