package app

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/tempizhere/golinkup/internal/repository"
)

// DB представляет подключение к базе данных
type DB struct {
	conn *sql.DB
}

// NewDB создаёт подключение к базе данных и один раз выполняет идемпотентную
// инициализацию схемы до того, как сервис начнёт принимать запросы
func NewDB(dsn string) (repository.Database, error) {
	if dsn == "" {
		return nil, nil
	}

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	// Создаём таблицы
	_, err = conn.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username VARCHAR(50) UNIQUE NOT NULL,
            password_hash VARCHAR(100) NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = conn.Exec(`
        CREATE TABLE IF NOT EXISTS links (
            id SERIAL PRIMARY KEY,
            original_url TEXT NOT NULL,
            custom_slug VARCHAR(100) UNIQUE NOT NULL,
            clicks BIGINT NOT NULL DEFAULT 0,
            user_id INTEGER NOT NULL REFERENCES users(id),
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Ping проверяет соединение с базой данных
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close закрывает соединение с базой данных
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Exec выполняет SQL-запрос с аргументами
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query выполняет SQL-запрос и возвращает множество строк
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow выполняет SQL-запрос и возвращает одну строку
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Begin начинает транзакцию
func (db *DB) Begin() (*sql.Tx, error) {
	if db == nil || db.conn == nil {
		return nil, sql.ErrConnDone
	}
	return db.conn.Begin()
}
