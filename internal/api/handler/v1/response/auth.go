package response

import "github.com/colaai/colaai-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthcheckResponse struct {
	Status string `json:"status"`
}
