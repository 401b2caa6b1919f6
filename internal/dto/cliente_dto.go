package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Tipo      string `json:"tipo"      validate:"required,oneof=NATURAL JURIDICA"`
	Documento string `json:"documento" validate:"required,min=8,max=20"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Telefono  string `json:"telefono"  validate:"omitempty,max=20"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Tipo      string  `json:"tipo"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	// Creado is true when the client was just created from the identity API,
	// false when it already existed. Origen: "BD" | "API".
	Creado bool   `json:"creado"`
	Origen string `json:"origen,omitempty"`
}

type BuscarClienteResponse struct {
	Cliente   ClienteResponse   `json:"cliente"`
	Prestamo  *PrestamoResumen  `json:"prestamo"`
	EsNatural bool              `json:"es_natural"`
}

type PrestamoResumen struct {
	PrestamoID  string `json:"prestamo_id"`
	MontoTotal  string `json:"monto_total"`
	FechaInicio string `json:"fecha_inicio"`
}
