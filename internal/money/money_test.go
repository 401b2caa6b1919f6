package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want string }{
		{"10", "10.00"},
		{"3.333333", "3.33"},
		{"3.335", "3.34"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"19.999", "20.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Round2(dec(c.in)).StringFixed(2), "Round2(%s)", c.in)
	}
}

func TestCashRound(t *testing.T) {
	cases := []struct{ in, want string }{
		{"15.34", "15.30"},
		{"15.35", "15.40"},
		{"15.36", "15.40"},
		{"50.05", "50.10"},
		{"50.04", "50.00"},
		{"10.00", "10.00"},
		{"0.01", "0.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CashRound(dec(c.in)).StringFixed(2), "CashRound(%s)", c.in)
	}
}

func TestEqualComparesAfterRounding(t *testing.T) {
	assert.True(t, Equal(dec("10.004"), dec("10.00")))
	assert.False(t, Equal(dec("10.01"), dec("10.00")))
}

func TestIsZero2(t *testing.T) {
	assert.True(t, IsZero2(dec("0.004")))
	assert.False(t, IsZero2(dec("0.01")))
}
