package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// ErrInvalidRequest is returned when a request body cannot be decoded or
// fails struct validation.
var ErrInvalidRequest = errors.New("invalid request")

// DecodeJSON decodes the request body into dst and validates it against its
// struct tags. Unknown fields are rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return nil
}
