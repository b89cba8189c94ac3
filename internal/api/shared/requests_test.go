package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "test", "age": 30}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "test", "age": 30,}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "two values",
			requestBody: `{"name": "a"} {"name": "b"}`,
			wantErr:     true,
			errContains: "single JSON value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tc.requestBody))

			var got payload
			err := DecodeJSON(req, &got)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, payload{Name: "test", Age: 30}, got)
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		Name   string  `validate:"required"`
		Status *string `validate:"omitempty,oneof=PENDING DONE"`
	}

	assert.NoError(t, ValidateRequest(tagged{Name: "x"}))

	err := ValidateRequest(tagged{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Name", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())

	bad := "LATER"
	assert.Error(t, ValidateRequest(tagged{Name: "x", Status: &bad}))

	type named struct {
		Title string `json:"title,omitempty" validate:"required"`
	}
	require.ErrorAs(t, ValidateRequest(named{}), &verrs)
	assert.Equal(t, "title", verrs[0].Field(), "field errors use the JSON name")

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}
