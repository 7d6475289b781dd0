package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tempizhere/golinkup/internal/models"
	"go.uber.org/zap"
)

// pgUniqueViolation - код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// PostgresRepository реализует интерфейсы UserRepository и LinkRepository
// с использованием PostgreSQL
type PostgresRepository struct {
	db     Database
	logger *zap.Logger
}

// NewPostgresRepository создаёт новый экземпляр PostgresRepository
func NewPostgresRepository(db Database, logger *zap.Logger) (*PostgresRepository, error) {
	if db == nil {
		return nil, nil
	}
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}, nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CreateUser сохраняет нового пользователя, проверяя уникальность имени
func (r *PostgresRepository) CreateUser(username, passwordHash string) (models.User, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check username", zap.String("username", username), zap.Error(err))
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	user := models.User{Username: username, PasswordHash: passwordHash}
	err = r.db.QueryRow(
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id",
		username, passwordHash,
	).Scan(&user.ID)
	if err != nil {
		// Уникальный индекс ловит гонку между проверкой и вставкой
		if isUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		r.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return models.User{}, err
	}
	return user, nil
}

// GetUserByName возвращает пользователя по имени
func (r *PostgresRepository) GetUserByName(username string) (models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, username, password_hash FROM users WHERE username = $1", username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by name", zap.String("username", username), zap.Error(err))
		return models.User{}, err
	}
	return user, nil
}

// GetUserByID возвращает пользователя по ID
func (r *PostgresRepository) GetUserByID(id int64) (models.User, error) {
	var user models.User
	err := r.db.QueryRow(
		"SELECT id, username, password_hash FROM users WHERE id = $1", id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by id", zap.Int64("id", id), zap.Error(err))
		return models.User{}, err
	}
	return user, nil
}

// SaveLink сохраняет новую ссылку, проверяя уникальность слага среди всех пользователей
func (r *PostgresRepository) SaveLink(originalURL, slug string, userID int64) (models.Link, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS (SELECT 1 FROM links WHERE custom_slug = $1)", slug).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check slug", zap.String("slug", slug), zap.Error(err))
		return models.Link{}, err
	}
	if exists {
		return models.Link{}, ErrSlugTaken
	}

	link := models.Link{OriginalURL: originalURL, Slug: slug, UserID: userID}
	err = r.db.QueryRow(
		"INSERT INTO links (original_url, custom_slug, user_id) VALUES ($1, $2, $3) RETURNING id",
		originalURL, slug, userID,
	).Scan(&link.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Link{}, ErrSlugTaken
		}
		r.logger.Error("Failed to save link", zap.String("slug", slug), zap.Error(err))
		return models.Link{}, err
	}
	return link, nil
}

// GetLinkBySlug возвращает ссылку по слагу
func (r *PostgresRepository) GetLinkBySlug(slug string) (models.Link, error) {
	var link models.Link
	err := r.db.QueryRow(
		"SELECT id, original_url, custom_slug, clicks, user_id FROM links WHERE custom_slug = $1", slug,
	).Scan(&link.ID, &link.OriginalURL, &link.Slug, &link.Clicks, &link.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Link{}, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get link", zap.String("slug", slug), zap.Error(err))
		return models.Link{}, err
	}
	return link, nil
}

// GetLinksByUserID возвращает все ссылки, созданные пользователем
func (r *PostgresRepository) GetLinksByUserID(userID int64) ([]models.Link, error) {
	rows, err := r.db.Query(
		"SELECT id, original_url, custom_slug, clicks, user_id FROM links WHERE user_id = $1", userID,
	)
	if err != nil {
		r.logger.Error("Failed to get user links", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.OriginalURL, &link.Slug, &link.Clicks, &link.UserID); err != nil {
			r.logger.Error("Failed to scan link row", zap.Error(err))
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// IncrementClicks атомарно увеличивает счётчик переходов одним UPDATE
// и возвращает оригинальный URL. Одного оператора достаточно, чтобы
// конкурентные переходы не теряли обновления.
func (r *PostgresRepository) IncrementClicks(slug string) (string, error) {
	var originalURL string
	err := r.db.QueryRow(
		"UPDATE links SET clicks = clicks + 1 WHERE custom_slug = $1 RETURNING original_url", slug,
	).Scan(&originalURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to increment clicks", zap.String("slug", slug), zap.Error(err))
		return "", err
	}
	return originalURL, nil
}

// CountStats возвращает сводную статистику по всем записям
func (r *PostgresRepository) CountStats() (models.StatsResponse, error) {
	var stats models.StatsResponse
	err := r.db.QueryRow(
		"SELECT (SELECT COUNT(*) FROM users), COUNT(*), COALESCE(SUM(clicks), 0) FROM links",
	).Scan(&stats.Users, &stats.Links, &stats.Clicks)
	if err != nil {
		r.logger.Error("Failed to count stats", zap.Error(err))
		return models.StatsResponse{}, err
	}
	return stats, nil
}
