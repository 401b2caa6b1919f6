package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a borrower. Tipo: "NATURAL" | "JURIDICA".
// Nombre is resolved from the Decolecta identity API at creation time and
// snapshotted here — it is never refreshed afterwards.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      string    `gorm:"type:varchar(10);not null"`
	Nombre    string    `gorm:"not null"`
	Documento string    `gorm:"type:varchar(20);not null;unique"`
	Email     *string
	Telefono  *string `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Prestamos []Prestamo `gorm:"foreignKey:ClienteID"`
}
