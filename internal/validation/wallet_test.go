package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Value       uint32 `validate:"required"`
	Kind        string `validate:"required,transaction_kind"`
	Description string `validate:"required,min=1,max=10"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Value: 1, Kind: "c", Description: "ok"}))
	assert.NoError(t, Struct(sample{Value: 1, Kind: "d", Description: "0123456789"}))

	err := Struct(sample{Value: 0, Kind: "x", Description: "01234567890"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, FieldError{Field: "Value", Rule: "required"}, verr.Fields[0])
	assert.Equal(t, FieldError{Field: "Kind", Rule: "transaction_kind"}, verr.Fields[1])
	assert.Equal(t, FieldError{Field: "Description", Rule: "max"}, verr.Fields[2])
	assert.Contains(t, err.Error(), "Kind: transaction_kind")
}

func TestStruct_MultibyteDescription(t *testing.T) {
	assert.NoError(t, Struct(sample{Value: 1, Kind: "c", Description: "descrição"}))
}
