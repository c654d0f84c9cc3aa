package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidResponse = errors.New("respuesta del servidor inválida")
	ErrNoSession       = errors.New("no hay sesión iniciada")
)

// APIError fallo de aplicación: el backend respondió con code != 0 en el sobre.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: código %d: %s", e.Code, e.Message)
}

// TransportError fallo de transporte: estado HTTP no exitoso o error de red (Status 0).
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transporte: %s", e.Message)
	}
	return fmt.Sprintf("transporte: HTTP %d: %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPICode indica si err es un APIError con el código dado.
func IsAPICode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
