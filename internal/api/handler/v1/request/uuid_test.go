package request

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUUID(t *testing.T) {
	id := uuid.NewString()
	upper := strings.ToUpper(id)
	empty := ""
	bad := "not-an-id"

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{name: "Lowercase", value: id},
		{name: "Uppercase", value: upper},
		{name: "Pointer", value: &upper},
		{name: "Empty is left to Required", value: ""},
		{name: "Empty pointer is left to NilOrNotEmpty", value: &empty},
		{name: "Nil pointer", value: (*string)(nil)},
		{name: "Garbage", value: bad, wantErr: true},
		{name: "Garbage pointer", value: &bad, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, isUUID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUppercaseIDsInBodies(t *testing.T) {
	id := uuid.New()
	upper := strings.ToUpper(id.String())

	ins := CreateInscriptionRequest{EventID: upper}
	require.NoError(t, ins.Validate())
	assert.Equal(t, id, ins.EventUUID())

	pay := PaymentRequest{EventID: upper, Method: "pix"}
	require.NoError(t, pay.Validate())
	assert.Equal(t, id, pay.EventUUID())

	parsed, err := ParseUUID(upper)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}
