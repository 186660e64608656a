package apierror

import (
	"errors"
	"net/http"
)

// Error porte un message lisible et un code HTTP. Les handlers le renvoient
// tel quel au client, sans retry ni récupération locale.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, code int) *Error {
	return &Error{Code: code, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func Invalid(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message}
}

// StatusOf retourne le code HTTP d'une erreur, 500 si elle n'est pas typée
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}

// IsNotFound indique si l'erreur est un 404
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
