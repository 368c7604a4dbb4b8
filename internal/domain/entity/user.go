package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
	RoleCajero  = "cajero"
)

// User usuario del sistema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"` // bcrypt, nunca plano después de persistir
	Name         string    `json:"name"`
	Role         string    `json:"role"`   // admin, gerente, cajero
	Status       string    `json:"status"` // active, inactive
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor identidad resuelta del usuario autenticado que ejecuta una operación.
// Toda mutación del core exige un actor no anónimo para la atribución de
// auditoría.
type Actor struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

// Anonymous indica si el actor carece de identidad.
func (a Actor) Anonymous() bool { return a.UserID == "" }
