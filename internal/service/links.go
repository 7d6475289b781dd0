package service

import (
	"errors"
	"strings"

	"github.com/tempizhere/golinkup/internal/models"
	"github.com/tempizhere/golinkup/internal/repository"
)

var (
	// ErrSlugTaken возвращается при попытке создать ссылку с занятым слагом
	ErrSlugTaken = errors.New("slug already taken")
	// ErrNotFound возвращается, если ссылка с указанным слагом не существует
	ErrNotFound = errors.New("link not found")
	// ErrForbidden возвращается при запросе статистики не владельцем ссылки
	ErrForbidden = errors.New("not the link owner")
)

// LinkService реализует логику работы с короткими ссылками
type LinkService struct {
	links   repository.LinkRepository
	baseURL string
}

// NewLinkService создаёт новый экземпляр LinkService
func NewLinkService(links repository.LinkRepository, baseURL string) *LinkService {
	return &LinkService{
		links:   links,
		baseURL: baseURL,
	}
}

// ShortURL возвращает публичный адрес ссылки по слагу
func (s *LinkService) ShortURL(slug string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + slug
}

// CreateLink создаёт ссылку с нулевым счётчиком переходов.
// Слаг уникален среди ссылок всех пользователей, а не в рамках владельца.
func (s *LinkService) CreateLink(userID int64, originalURL, slug string) (models.Link, error) {
	if originalURL == "" || slug == "" {
		return models.Link{}, ErrMissingField
	}
	link, err := s.links.SaveLink(originalURL, slug, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return models.Link{}, ErrSlugTaken
		}
		return models.Link{}, err
	}
	return link, nil
}

// ListLinks возвращает все ссылки, созданные пользователем
func (s *LinkService) ListLinks(userID int64) ([]models.Link, error) {
	return s.links.GetLinksByUserID(userID)
}

// ResolveAndCount увеличивает счётчик переходов и возвращает оригинальный URL.
// Инкремент и чтение выполняются одной атомарной операцией хранилища,
// неизвестный слаг не изменяет ни одной записи.
func (s *LinkService) ResolveAndCount(slug string) (string, error) {
	originalURL, err := s.links.IncrementClicks(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return originalURL, nil
}

// GetStats возвращает ссылку со счётчиком переходов только её владельцу
func (s *LinkService) GetStats(slug string, userID int64) (models.Link, error) {
	link, err := s.links.GetLinkBySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Link{}, ErrNotFound
		}
		return models.Link{}, err
	}
	if link.UserID != userID {
		return models.Link{}, ErrForbidden
	}
	return link, nil
}

// ServiceStats возвращает сводную статистику по всем пользователям и ссылкам
func (s *LinkService) ServiceStats() (models.StatsResponse, error) {
	return s.links.CountStats()
}
