package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := func() SignupRequest {
		return SignupRequest{
			Name:            "Maria Silva",
			Email:           "maria@test.com",
			Password:        "Secret@123",
			ConfirmPassword: "Secret@123",
			Phone:           "+55 (11) 91234-5678",
			CPF:             "123.456.789-09",
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{name: "Valid", mutate: func(*SignupRequest) {}},
		{name: "Organizer role", mutate: func(r *SignupRequest) { r.Role = "ORGANIZER" }},
		{name: "Admin role is refused", mutate: func(r *SignupRequest) { r.Role = "ADMIN" }, wantErr: true},
		{name: "Missing name", mutate: func(r *SignupRequest) { r.Name = "" }, wantErr: true},
		{name: "Bad email", mutate: func(r *SignupRequest) { r.Email = "maria" }, wantErr: true},
		{
			name: "Password without symbol",
			mutate: func(r *SignupRequest) {
				r.Password = "Secret123"
				r.ConfirmPassword = "Secret123"
			},
			wantErr: true,
		},
		{
			name: "Password without digit",
			mutate: func(r *SignupRequest) {
				r.Password = "Secret@abc"
				r.ConfirmPassword = "Secret@abc"
			},
			wantErr: true,
		},
		{
			name: "Short password",
			mutate: func(r *SignupRequest) {
				r.Password = "S@1a"
				r.ConfirmPassword = "S@1a"
			},
			wantErr: true,
		},
		{name: "Confirmation mismatch", mutate: func(r *SignupRequest) { r.ConfirmPassword = "Secret@124" }, wantErr: true},
		{name: "Bad CPF", mutate: func(r *SignupRequest) { r.CPF = "12345" }, wantErr: true},
		{name: "Bad phone", mutate: func(r *SignupRequest) { r.Phone = "call me" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignupRequest_PasswordErrors(t *testing.T) {
	req := SignupRequest{Name: "Maria", Email: "maria@test.com", Password: "password", ConfirmPassword: "password"}
	assert.ErrorIs(t, req.Validate(), errInvalidPassword)

	req = SignupRequest{Name: "Maria", Email: "maria@test.com", Password: "Secret@123", ConfirmPassword: "Secret@321"}
	assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
}
