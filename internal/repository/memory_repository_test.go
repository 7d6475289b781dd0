package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRepository_Users(t *testing.T) {
	repo := NewMemoryRepository()

	// Тест 1: создание пользователя
	user, err := repo.CreateUser("alice", "hash1")
	assert.NoError(t, err, "CreateUser should not return error")
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID, "ID should be assigned")

	// Тест 2: повторная регистрация с тем же именем
	_, err = repo.CreateUser("alice", "hash2")
	assert.ErrorIs(t, err, ErrUsernameTaken, "duplicate username should be rejected")

	// Тест 3: при отказе новая запись не создаётся
	_, err = repo.GetUserByName("alice")
	assert.NoError(t, err)
	found, err := repo.GetUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "hash1", found.PasswordHash, "original user should be untouched")

	// Тест 4: поиск несуществующего пользователя
	_, err = repo.GetUserByName("bob")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetUserByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_Links(t *testing.T) {
	repo := NewMemoryRepository()
	alice, err := repo.CreateUser("alice", "hash")
	assert.NoError(t, err)
	bob, err := repo.CreateUser("bob", "hash")
	assert.NoError(t, err)

	// Тест 1: создание ссылки с нулевым счётчиком
	link, err := repo.SaveLink("https://example.com", "ex1", alice.ID)
	assert.NoError(t, err, "SaveLink should not return error")
	assert.Equal(t, int64(0), link.Clicks, "clicks should start at zero")
	assert.Equal(t, alice.ID, link.UserID)

	// Тест 2: слаг занят глобально, в том числе для другого пользователя
	_, err = repo.SaveLink("https://other.com", "ex1", bob.ID)
	assert.ErrorIs(t, err, ErrSlugTaken, "slug namespace is global")

	// Тест 3: при отказе запись не создаётся и владелец не меняется
	stored, err := repo.GetLinkBySlug("ex1")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com", stored.OriginalURL)
	assert.Equal(t, alice.ID, stored.UserID)

	// Тест 4: список ссылок по владельцу
	_, err = repo.SaveLink("https://two.com", "ex2", alice.ID)
	assert.NoError(t, err)
	links, err := repo.GetLinksByUserID(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 2)
	bobLinks, err := repo.GetLinksByUserID(bob.ID)
	assert.NoError(t, err)
	assert.Empty(t, bobLinks)

	// Тест 5: неизвестный слаг
	_, err = repo.GetLinkBySlug("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_IncrementClicks(t *testing.T) {
	repo := NewMemoryRepository()
	alice, err := repo.CreateUser("alice", "hash")
	assert.NoError(t, err)
	_, err = repo.SaveLink("https://example.com", "ex1", alice.ID)
	assert.NoError(t, err)

	// Тест 1: инкремент возвращает оригинальный URL
	url, err := repo.IncrementClicks("ex1")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	link, err := repo.GetLinkBySlug("ex1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), link.Clicks)

	// Тест 2: неизвестный слаг не изменяет ни одной записи
	_, err = repo.IncrementClicks("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	link, err = repo.GetLinkBySlug("ex1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), link.Clicks)
}

func TestMemoryRepository_ConcurrentIncrements(t *testing.T) {
	repo := NewMemoryRepository()
	alice, err := repo.CreateUser("alice", "hash")
	assert.NoError(t, err)
	_, err = repo.SaveLink("https://example.com", "ex1", alice.ID)
	assert.NoError(t, err)

	// N конкурентных переходов не должны терять обновления
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClicks("ex1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	link, err := repo.GetLinkBySlug("ex1")
	assert.NoError(t, err)
	assert.Equal(t, int64(n), link.Clicks, "no increment may be lost")
}

func TestMemoryRepository_CountStats(t *testing.T) {
	repo := NewMemoryRepository()
	alice, err := repo.CreateUser("alice", "hash")
	assert.NoError(t, err)
	_, err = repo.CreateUser("bob", "hash")
	assert.NoError(t, err)
	_, err = repo.SaveLink("https://example.com", "ex1", alice.ID)
	assert.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = repo.IncrementClicks("ex1")
		assert.NoError(t, err)
	}

	stats, err := repo.CountStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Links)
	assert.Equal(t, int64(3), stats.Clicks)
}
