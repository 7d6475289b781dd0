package repository

import (
	"sync"

	"github.com/tempizhere/golinkup/internal/models"
)

// MemoryRepository реализует интерфейсы UserRepository и LinkRepository
// с использованием map. Мьютекс защищает инкремент счётчика от потери
// обновлений при конкурентных переходах по одному слагу.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	byName map[string]int64
	links  map[string]models.Link
	nextID int64
}

// NewMemoryRepository создаёт новый экземпляр MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int64]models.User),
		byName: make(map[string]int64),
		links:  make(map[string]models.Link),
		nextID: 1,
	}
}

// CreateUser сохраняет нового пользователя, проверяя уникальность имени
func (r *MemoryRepository) CreateUser(username, passwordHash string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[username]; exists {
		return models.User{}, ErrUsernameTaken
	}
	user := models.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
	}
	r.nextID++
	r.users[user.ID] = user
	r.byName[username] = user.ID
	return user, nil
}

// GetUserByName возвращает пользователя по имени
func (r *MemoryRepository) GetUserByName(username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, exists := r.byName[username]
	if !exists {
		return models.User{}, ErrNotFound
	}
	return r.users[id], nil
}

// GetUserByID возвращает пользователя по ID
func (r *MemoryRepository) GetUserByID(id int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[id]
	if !exists {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// SaveLink сохраняет новую ссылку, проверяя уникальность слага среди всех пользователей
func (r *MemoryRepository) SaveLink(originalURL, slug string, userID int64) (models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.links[slug]; exists {
		return models.Link{}, ErrSlugTaken
	}
	link := models.Link{
		ID:          r.nextID,
		OriginalURL: originalURL,
		Slug:        slug,
		Clicks:      0,
		UserID:      userID,
	}
	r.nextID++
	r.links[slug] = link
	return link, nil
}

// GetLinkBySlug возвращает ссылку по слагу
func (r *MemoryRepository) GetLinkBySlug(slug string) (models.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, exists := r.links[slug]
	if !exists {
		return models.Link{}, ErrNotFound
	}
	return link, nil
}

// GetLinksByUserID возвращает все ссылки, созданные пользователем
func (r *MemoryRepository) GetLinksByUserID(userID int64) ([]models.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var links []models.Link
	for _, l := range r.links {
		if l.UserID == userID {
			links = append(links, l)
		}
	}
	return links, nil
}

// IncrementClicks атомарно увеличивает счётчик переходов под мьютексом
// и возвращает оригинальный URL
func (r *MemoryRepository) IncrementClicks(slug string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, exists := r.links[slug]
	if !exists {
		return "", ErrNotFound
	}
	link.Clicks++
	r.links[slug] = link
	return link.OriginalURL, nil
}

// CountStats возвращает сводную статистику по всем записям
func (r *MemoryRepository) CountStats() (models.StatsResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := models.StatsResponse{
		Users: int64(len(r.users)),
		Links: int64(len(r.links)),
	}
	for _, l := range r.links {
		stats.Clicks += l.Clicks
	}
	return stats, nil
}
