package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGzipMiddleware_Response(t *testing.T) {
	largeBody := strings.Repeat("x", 2000)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(largeBody))
		assert.NoError(t, err)
	})
	handler := GzipMiddleware(next)

	// Тест 1: крупный JSON-ответ сжимается
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(w.Body)
	assert.NoError(t, err)
	decoded, err := io.ReadAll(gz)
	assert.NoError(t, err)
	assert.Equal(t, largeBody, string(decoded))

	// Тест 2: клиент без Accept-Encoding получает несжатый ответ
	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, largeBody, w.Body.String())
}

func TestGzipMiddleware_SmallResponseNotCompressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"ok":true}`))
		assert.NoError(t, err)
	})
	handler := GzipMiddleware(next)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

func TestGzipMiddleware_Request(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		got = string(body)
	})
	handler := GzipMiddleware(next)

	// Тест 1: сжатое тело запроса распаковывается
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("username=alice"))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())

	r := httptest.NewRequest(http.MethodPost, "/register", &buf)
	r.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, "username=alice", got)

	// Тест 2: битые gzip-данные отклоняются
	r = httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("not gzip"))
	r.Header.Set("Content-Encoding", "gzip")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
