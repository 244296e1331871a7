package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "ENTRADA" // ingreso de stock
	MovementTypeExit  = "SALIDA"  // egreso de stock
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement representa una entrada o salida de stock de un insumo.
// Inmutable una vez creado; se elimina solo junto con su insumo.
type Movement struct {
	ID        string
	ItemID    string
	Type      string // ENTRADA, SALIDA
	Quantity  int    // siempre > 0; el signo lo da Type
	CreatedAt time.Time
	CreatedBy string // UserID; vacío si el usuario fue eliminado
}

// Delta devuelve la variación firmada que el movimiento aplica al stock.
func (m *Movement) Delta() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
