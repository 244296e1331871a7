package dto

import "time"

// RegisterMovementRequest body para POST /api/movimientos.
type RegisterMovementRequest struct {
	ItemCode string `json:"codigo_insumo"`
	Type     string `json:"tipo"`
	Quantity int    `json:"cantidad"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"insumo_id"`
	ItemCode  string    `json:"codigo_insumo"`
	ItemName  string    `json:"nombre_insumo"`
	Type      string    `json:"tipo"`
	Quantity  int       `json:"cantidad"`
	CreatedAt time.Time `json:"fecha"`
	UserID    *string   `json:"usuario_id"`
	Username  string    `json:"usuario,omitempty"`
}

// RegisterMovementResponse confirmación de un movimiento registrado.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movimiento"`
	NewStock int              `json:"stock_actual"`
	Message  string           `json:"message"`
}

// MovementListResponse historial de movimientos, más recientes primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
