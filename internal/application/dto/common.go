package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// InsufficientStockResponse error 409 con el detalle de disponible vs solicitado.
type InsufficientStockResponse struct {
	ErrorResponse
	Available int `json:"available"`
	Requested int `json:"requested"`
}
