package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

var errInvalidUUID = errors.New("must be a valid UUID")

// isUUID accepts what ParseUUID accepts, so body ids and path ids follow the
// same rule. Empty values are left to Required and NilOrNotEmpty.
var isUUID = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	s, _ := v.(string)
	if isNil || s == "" {
		return nil
	}
	if _, err := ParseUUID(s); err != nil {
		return errInvalidUUID
	}

	return nil
})

// ParseUUID parses an id from a request body, query or path.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
