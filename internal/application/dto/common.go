package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RetryAfterSeconds solo en respuestas 429 (bloqueo por intentos fallidos).
	RetryAfterSeconds int64 `json:"retry_after_seconds,omitempty"`
}
