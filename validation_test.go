package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name     string  `json:"name" validate:"required,notblank,max=5"`
	Price    float64 `json:"price,omitempty" validate:"min=0"`
	Quantity int     `form:"qty" validate:"min=1"`
	Note     string
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(item{Name: "bolt", Price: 1, Quantity: 1}))
	assert.NoError(t, Validate("not a struct"))

	err := Validate(&item{Name: "  ", Price: -1})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"is required"}, verrs["name"])
	assert.Equal(t, []string{"must be at least 0"}, verrs["price"])
	assert.Equal(t, []string{"must be at least 1"}, verrs["qty"])
	assert.Equal(t, "validation failed: name: is required; price: must be at least 0; qty: must be at least 1", err.Error())

	err = Validate(item{Name: "bracket", Quantity: 1})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"must be at most 5"}, verrs["name"])

	err = Validate(&item{Quantity: 1})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ValidationErrors{"name": {"is required"}}, verrs)
}

type order struct {
	Status string `json:"status" validate:"oneof=open closed"`
	Line   item   `json:"line"`
}

func TestValidate_Nested(t *testing.T) {
	err := Validate(order{Status: "lost", Line: item{Name: "bolt"}})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"must be one of open closed"}, verrs["status"])
	assert.Equal(t, []string{"must be at least 1"}, verrs["line.qty"])

	var missing *item
	assert.NoError(t, Validate(missing))
}
