// Package proto содержит определения типов gRPC сервиса коротких ссылок
package proto

// RegisterRequest представляет запрос на регистрацию пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse представляет ответ с сессионным токеном нового пользователя
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ с сессионным токеном
type LoginResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// CreateLinkRequest представляет запрос на создание короткой ссылки
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	Slug        string `json:"custom_slug"`
}

// CreateLinkResponse представляет ответ с созданной ссылкой
type CreateLinkResponse struct {
	ShortURL string `json:"short_url"`
	Slug     string `json:"custom_slug"`
}

// ListLinksRequest представляет запрос на список ссылок пользователя
type ListLinksRequest struct{}

// LinkInfo представляет ссылку в ответах сервиса
type LinkInfo struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Slug        string `json:"custom_slug"`
	Clicks      int64  `json:"clicks"`
}

// ListLinksResponse представляет ответ со всеми ссылками пользователя
type ListLinksResponse struct {
	Links []LinkInfo `json:"links"`
}

// ResolveLinkRequest представляет запрос на переход по слагу
type ResolveLinkRequest struct {
	Slug string `json:"custom_slug"`
}

// ResolveLinkResponse представляет ответ с оригинальным URL.
// Успешный вызов увеличивает счётчик переходов.
type ResolveLinkResponse struct {
	OriginalURL string `json:"original_url"`
	Found       bool   `json:"found"`
}

// GetLinkStatsRequest представляет запрос статистики по ссылке
type GetLinkStatsRequest struct {
	Slug string `json:"custom_slug"`
}

// GetLinkStatsResponse представляет ответ со статистикой ссылки
type GetLinkStatsResponse struct {
	Link LinkInfo `json:"link"`
}

// PingRequest представляет запрос проверки состояния
type PingRequest struct{}

// PingResponse представляет ответ проверки состояния
type PingResponse struct {
	DatabaseAvailable bool `json:"database_available"`
}
