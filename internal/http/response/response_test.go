package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: fmt.Errorf("op: %w", apperr.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "op: not found"},
		{name: "forbidden", err: apperr.ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: "forbidden"},
		{name: "internal hidden", err: errors.New("mongo: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			Fail(rr, req, tt.err, "failed")

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Duration int    `validate:"gt=0"`
	}
	err := validator.New().Struct(payload{Email: "nope", Duration: 0})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Duration must be greater than 0")
}

func TestInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	Invalid(rr, req, errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")

	type payload struct {
		Name string `validate:"required"`
	}
	rr = httptest.NewRecorder()
	Invalid(rr, req, validator.New().Struct(payload{}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "field Name is a required field")
}
