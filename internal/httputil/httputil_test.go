package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=4"`
	Kind  string `json:"kind" validate:"omitempty,oneof=goal assist"`
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unauthenticated", football.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", fmt.Errorf("%w: not yours", football.ErrForbidden), http.StatusForbidden, "forbidden: not yours"},
		{"not found", fmt.Errorf("%w: player", football.ErrNotFound), http.StatusNotFound, "not found: player"},
		{"invalid input", football.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"invalid state", football.ErrInvalidState, http.StatusConflict, "invalid state"},
		{"internal", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body["error"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Five a side","count":2,"kind":"goal"}`, ""},
		{"empty body", ``, "request body is empty"},
		{"malformed", `{"name":`, "malformed JSON"},
		{"unknown field", `{"name":"x","count":1,"extra":true}`, "malformed JSON"},
		{"trailing garbage", `{"name":"x","count":1} garbage`, "single JSON object"},
		{"second object", `{"name":"x","count":1}{"name":"y","count":2}`, "single JSON object"},
		{"missing required", `{"count":1}`, "name is required"},
		{"out of range", `{"name":"x","count":9}`, "count must be at most 4"},
		{"bad enum", `{"name":"x","count":1,"kind":"corner"}`, "kind must be one of [goal assist]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var in sampleInput
			err := DecodeJSON(req, &in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Five a side", in.Name)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, football.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
