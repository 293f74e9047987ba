package auth

import (
	"testing"

	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    LoginRequest
		fields []string
	}{
		{"valid", LoginRequest{Email: " admin@example.com ", Password: "secret123"}, nil},
		{"missing both", LoginRequest{}, []string{"email", "password"}},
		{"bad email", LoginRequest{Email: "admin", Password: "x"}, []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				assert.Equal(t, "admin@example.com", tt.req.Email)
				return
			}
			var verrs validator.ValidationErrors
			if assert.ErrorAs(t, err, &verrs) {
				for _, f := range tt.fields {
					assert.Contains(t, verrs.ToMap(), f)
				}
			}
		})
	}
}

func TestRefreshTokenRequest_Validate(t *testing.T) {
	assert.Error(t, (&RefreshTokenRequest{}).Validate())
	assert.NoError(t, (&RefreshTokenRequest{RefreshToken: "tok"}).Validate())
}
