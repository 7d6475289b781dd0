// Package models содержит структуры данных сервиса коротких ссылок
package models

// User представляет зарегистрированного пользователя
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Link представляет короткую ссылку, принадлежащую пользователю
type Link struct {
	ID          int64  `json:"id"`
	OriginalURL string `json:"original_url"`
	Slug        string `json:"custom_slug" db:"custom_slug"`
	Clicks      int64  `json:"clicks"`
	UserID      int64  `json:"user_id" db:"user_id"`
}

// CredentialsRequest представляет данные формы регистрации и входа
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateLinkRequest представляет данные формы создания ссылки
type CreateLinkRequest struct {
	URL  string `json:"url"`
	Slug string `json:"slug"`
}

// LinkResponse представляет ссылку в ответах API
type LinkResponse struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Slug        string `json:"custom_slug"`
	Clicks      int64  `json:"clicks"`
}

// StatsResponse представляет сводную статистику сервиса
type StatsResponse struct {
	Users  int64 `json:"users"`
	Links  int64 `json:"links"`
	Clicks int64 `json:"clicks"`
}
