// Package app содержит HTTP-обработчики сервиса коротких ссылок
package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/golinkup/internal/middleware"
	"github.com/tempizhere/golinkup/internal/models"
	"github.com/tempizhere/golinkup/internal/repository"
	"github.com/tempizhere/golinkup/internal/service"
)

// IndexResponse представляет ответ главной страницы
type IndexResponse struct {
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
}

// App содержит хендлеры и зависимости
type App struct {
	svc       *service.LinkService
	auth      *service.AuthService
	db        repository.Database
	cookieTTL int
}

// NewApp создаёт новое приложение
func NewApp(svc *service.LinkService, auth *service.AuthService, db repository.Database, cookieTTLSeconds int) *App {
	return &App{svc: svc, auth: auth, db: db, cookieTTL: cookieTTLSeconds}
}

// redirectWithMessage перенаправляет на указанный путь, передавая сообщение
// в query-параметре (аналог flash-сообщения)
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, message string) {
	target := path
	if message != "" {
		target = path + "?message=" + url.QueryEscape(message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleIndex обрабатывает GET-запросы на "/"
func (a *App) HandleIndex(w http.ResponseWriter, r *http.Request) {
	a.writeJSONResponse(w, http.StatusOK, IndexResponse{
		Service: "golinkup",
		Message: r.URL.Query().Get("message"),
	})
}

// credentials разбирает имя и пароль из JSON-тела или формы
func credentials(r *http.Request) (models.CredentialsRequest, error) {
	var req models.CredentialsRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return models.CredentialsRequest{}, err
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return models.CredentialsRequest{}, err
	}
	req.Username = r.FormValue("username")
	req.Password = r.FormValue("password")
	return req, nil
}

// HandleRegister обрабатывает POST-запросы на "/register"
func (a *App) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := credentials(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, token, err := a.auth.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			redirectWithMessage(w, r, "/", "username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			redirectWithMessage(w, r, "/", "username already exists")
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	middleware.SetSessionCookie(w, token, a.cookieTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleLogin обрабатывает POST-запросы на "/login"
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := credentials(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, token, err := a.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			redirectWithMessage(w, r, "/", "invalid credentials")
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	middleware.SetSessionCookie(w, token, a.cookieTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleDashboard обрабатывает GET-запросы на "/dashboard":
// возвращает все ссылки текущего пользователя
func (a *App) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	links, err := a.svc.ListLinks(userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]models.LinkResponse, len(links))
	for i, l := range links {
		resp[i] = models.LinkResponse{
			ShortURL:    a.svc.ShortURL(l.Slug),
			OriginalURL: l.OriginalURL,
			Slug:        l.Slug,
			Clicks:      l.Clicks,
		}
	}
	a.writeJSONResponse(w, http.StatusOK, resp)
}

// HandleCreateLink обрабатывает POST-запросы на "/dashboard":
// создаёт ссылку и возвращает пользователя на дашборд
func (a *App) HandleCreateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateLinkRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req.URL = r.FormValue("url")
		req.Slug = r.FormValue("slug")
	}

	_, err := a.svc.CreateLink(userID, req.URL, req.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			redirectWithMessage(w, r, "/dashboard", "url and slug are required")
		case errors.Is(err, service.ErrSlugTaken):
			redirectWithMessage(w, r, "/dashboard", "slug already in use")
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	redirectWithMessage(w, r, "/dashboard", "link created")
}

// HandleRedirect обрабатывает GET-запросы на "/{slug}": увеличивает счётчик
// переходов и перенаправляет на оригинальный URL
func (a *App) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "Missing slug", http.StatusBadRequest)
		return
	}

	originalURL, err := a.svc.ResolveAndCount(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// HandleStats обрабатывает GET-запросы на "/stats/{slug}":
// статистика доступна только владельцу ссылки
func (a *App) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	slug := chi.URLParam(r, "slug")
	link, err := a.svc.GetStats(slug, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			http.Error(w, "Link not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Unauthorized", http.StatusForbidden)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	a.writeJSONResponse(w, http.StatusOK, models.LinkResponse{
		ShortURL:    a.svc.ShortURL(link.Slug),
		OriginalURL: link.OriginalURL,
		Slug:        link.Slug,
		Clicks:      link.Clicks,
	})
}

// HandleInternalStats обрабатывает GET-запросы на "/api/internal/stats"
func (a *App) HandleInternalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.ServiceStats()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, stats)
}

// HandlePing обрабатывает GET-запросы на "/ping"
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		http.Error(w, "Database not configured", http.StatusInternalServerError)
		return
	}
	if err := a.db.Ping(); err != nil {
		http.Error(w, "Database connection failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeJSONResponse пишет JSON-ответ с проверкой ошибок
func (a *App) writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(data); err != nil {
		http.Error(w, "Failed to write response", http.StatusInternalServerError)
		return
	}
}
