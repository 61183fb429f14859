package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/propcheck/inspections/pkg/authsdk"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate parses a JSON body into target and runs struct
// validation. Returns a ready-to-write *APIError on failure.
func decodeAndValidate(r *http.Request, target any) *authsdk.APIError {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return authsdk.ErrInvalidRequest
	}
	if err := validate.Struct(target); err != nil {
		return authsdk.ErrInvalidRequest
	}
	return nil
}
