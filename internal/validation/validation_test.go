package validation

import (
	"testing"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Code  string  `json:"code" validate:"required,iata"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestIsIATACode(t *testing.T) {
	assert.True(t, IsIATACode("KUL"))
	assert.False(t, IsIATACode("kul"))
	assert.False(t, IsIATACode("KU"))
	assert.False(t, IsIATACode("KULL"))
	assert.False(t, IsIATACode("K1L"))
	assert.False(t, IsIATACode(""))
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "KLIA", Code: "KUL"}))

	err := Struct(sample{Code: "kul"})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	assert.ErrorContains(t, err, "name")

	err = Struct(sample{Name: "KLIA", Code: "kul"})
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.ErrorContains(t, err, "code (iata)")

	err = Struct(sample{Name: "KLIA", Code: "KUL", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.ErrorContains(t, err, "price")
}
