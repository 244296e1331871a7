package entity

import "time"

// Item representa un insumo o repuesto del inventario forestal.
// Stock solo cambia vía movimientos (ledger) o por edición directa del catálogo.
type Item struct {
	ID          string
	Code        string // código único (ej: HER-001)
	Name        string
	Description string
	Stock       int
	Location    string // ubicación física en el almacén (texto libre)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
