// Package apperr содержит таксономию ошибок приложения и их отображение в HTTP-статусы.
//
// Слои сервиса и хранилища оборачивают эти ошибки через fmt.Errorf("%s: %w", op, err),
// а обработчики на границе HTTP получают код ответа через HTTPStatus.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput - отсутствующие или некорректные поля запроса.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized - учетные данные не предъявлены.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden - токен недействителен или доступ запрещён.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound - запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
)

// HTTPStatus возвращает HTTP-статус для ошибки. Всё, что не попало в таксономию,
// считается внутренней ошибкой.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст для клиента: для ошибок таксономии - исходное сообщение,
// для внутренних - fallback, чтобы не раскрывать детали хранилища.
func Message(err error, fallback string) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
