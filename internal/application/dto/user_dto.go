package dto

import "time"

// RegisterRequest entrada para registro (auth): username y password.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT. También se devuelve al registrarse (login automático).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// DeleteUserResponse resultado de eliminar un usuario.
type DeleteUserResponse struct {
	ID                string `json:"id"`
	MovementsDetached int64  `json:"movimientos_sin_usuario"`
}
