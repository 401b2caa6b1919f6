package service

// Typed domain errors. Handlers map these onto HTTP statuses; the struct
// errors carry the numeric breakdown the operator needs to act.

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// Caja state machine
	ErrCajaYaAbierta = errors.New("Ya hay una caja abierta, debe cerrarse antes de abrir otra")
	ErrCajaNoExiste  = errors.New("No existe ninguna sesión de caja")
	ErrCajaCerrada   = errors.New("La última caja ya está cerrada")
	ErrCajaNoAbierta = errors.New("No se puede registrar pagos: la caja actual no está abierta")

	// Pagos / prestamos
	ErrCuotaNoEncontrada   = errors.New("Cuota no encontrada")
	ErrMontoInvalido       = errors.New("El monto debe ser mayor a 0")
	ErrMontoMaximo         = errors.New("Monto máximo permitido: 20000")
	ErrPrestamoActivo      = errors.New("El cliente ya tiene un préstamo activo")
	ErrClienteSinPrestamo  = errors.New("El cliente no tiene préstamo")
	ErrNumCuotasInvalido   = errors.New("El número de cuotas debe estar entre 1 y 24")

	// Clientes
	ErrClienteNoEncontrado = errors.New("Cliente no encontrado")
	ErrDocumentoDuplicado  = errors.New("Documento ya registrado en el sistema")
)

// CajaDescuadradaError is returned when the declared total does not match the
// theoretical total at close. The session is intentionally left open so the
// operator can resolve the discrepancy and retry.
type CajaDescuadradaError struct {
	TotalTeorico decimal.Decimal
	TotalReal    decimal.Decimal
	Diferencia   decimal.Decimal
}

func (e *CajaDescuadradaError) Error() string {
	return "La caja no cuadra, no se puede cerrar"
}

// MontoExcedeDeudaError is returned when the requested payment exceeds the
// installment's total due (remaining balance plus late fee).
type MontoExcedeDeudaError struct {
	TotalDebido decimal.Decimal
}

func (e *MontoExcedeDeudaError) Error() string {
	return "El monto pagado no puede ser mayor al total debido"
}

// IdentidadError wraps a failed Decolecta lookup. Identity failures abort
// client creation; they are never retried automatically.
type IdentidadError struct {
	Err error
}

func (e *IdentidadError) Error() string {
	return "No se pudo resolver el documento en el servicio de identidad"
}

func (e *IdentidadError) Unwrap() error { return e.Err }
