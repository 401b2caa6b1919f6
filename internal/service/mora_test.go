package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEsVencida(t *testing.T) {
	assert.True(t, EsVencida(fecha("2024-01-01"), fecha("2024-02-01")))
	assert.True(t, EsVencida(fecha("2024-01-01"), fecha("2024-01-02")))

	// due today is not overdue, regardless of time of day
	assert.False(t, EsVencida(fecha("2024-01-01"), fecha("2024-01-01")))
	mediodia := fecha("2024-01-01").Add(12 * time.Hour)
	assert.False(t, EsVencida(fecha("2024-01-01"), mediodia))

	assert.False(t, EsVencida(fecha("2024-01-02"), fecha("2024-01-01")))
}

func TestCalcularMora(t *testing.T) {
	assert.Equal(t, "10.00", CalcularMora(dec("1000"), true).StringFixed(2))
	assert.Equal(t, "0.00", CalcularMora(dec("1000"), false).StringFixed(2))

	// fee follows the remaining balance, so partial payments shrink it
	assert.Equal(t, "5.00", CalcularMora(dec("500"), true).StringFixed(2))

	// rounded to two decimals, half away from zero
	assert.Equal(t, "3.33", CalcularMora(dec("333.33"), true).StringFixed(2))
	assert.Equal(t, "0.51", CalcularMora(dec("50.50"), true).StringFixed(2))
}
