package service

import "fmt"

// NumeroComprobante derives the receipt number from the payment's sequence
// number: zero-padded to eight digits. Deterministic and injective, so
// receipt numbering needs no counter of its own and cannot collide.
func NumeroComprobante(numeroPago int64) string {
	return fmt.Sprintf("%08d", numeroPago)
}
