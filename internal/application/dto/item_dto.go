package dto

import "time"

// CreateItemRequest entrada para crear un insumo.
type CreateItemRequest struct {
	Code        string `json:"codigo"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Stock       int    `json:"stock_actual"`
	Location    string `json:"ubicacion"`
}

// UpdateItemRequest entrada para actualizar un insumo (parcial: nil = sin cambio).
type UpdateItemRequest struct {
	Code        *string `json:"codigo"`
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Stock       *int    `json:"stock_actual"`
	Location    *string `json:"ubicacion"`
}

// ItemResponse salida de un insumo.
type ItemResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"codigo"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Stock       int       `json:"stock_actual"`
	Location    string    `json:"ubicacion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListResponse lista completa de insumos ordenada por código.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// DeleteItemResponse resultado de eliminar un insumo junto con sus movimientos.
type DeleteItemResponse struct {
	ID               string `json:"id"`
	MovementsRemoved int64  `json:"movimientos_eliminados"`
}
