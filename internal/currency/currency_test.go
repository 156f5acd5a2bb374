package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "₹", Symbol("INR"))
}

func TestSymbolFallsBackToCode(t *testing.T) {
	assert.Equal(t, "XXX", Symbol("XXX"))
	assert.Equal(t, "", Symbol(""))
}
