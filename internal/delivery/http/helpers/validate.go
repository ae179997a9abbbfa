package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// MaxJSONBody caps JSON request bodies.
const MaxJSONBody = 1 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest implements
// Validator, runs Validate(). On decode or validation failure it writes a 400
// {"message": failMessage, "error": detail} and returns false.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any, failMessage string) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, failMessage, "invalid JSON body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, failMessage, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
