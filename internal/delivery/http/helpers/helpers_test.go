package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name"`
}

func (s sample) Validate() []string {
	if s.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestWriteJSONError_OmitsEmptyDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, http.StatusNotFound, "Event not found", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Event not found"}`, rec.Body.String())
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantDetail string
	}{
		{name: "valid", body: `{"name":"Ada","extra":1}`, wantOK: true},
		{name: "malformed", body: `{"name":`, wantDetail: "invalid JSON body"},
		{name: "fails validation", body: `{}`, wantDetail: "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest sample
			ok := DecodeAndValidate(rec, req, &dest, "Request failed")
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Ada", dest.Name)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "Request failed", body.Message)
			assert.Contains(t, body.Error, tt.wantDetail)
		})
	}
}
