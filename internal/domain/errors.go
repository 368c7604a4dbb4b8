package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStore              = errors.New("fallo del almacén de datos")
)

// RateLimitedError indica que el identificador está bloqueado por intentos
// fallidos de login. Incluye la expiración para que el caller informe el tiempo
// de espera.
type RateLimitedError struct {
	Until time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("demasiados intentos fallidos, bloqueado hasta %s", e.Until.Format(time.RFC3339))
}

// StoreFailure envuelve un error del almacén subyacente preservando la causa.
// errors.Is(err, ErrStore) es verdadero para cualquier error envuelto así.
func StoreFailure(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, cause)
}
