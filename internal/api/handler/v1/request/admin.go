package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

type UpdateUserRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role" enums:"ADMIN,ORGANIZER,PARTICIPANT"`
}

func (req *UpdateUserRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, isUUID),
		validation.Field(&req.Role, validation.Required, validation.In(
			string(domain.RoleAdmin),
			string(domain.RoleOrganizer),
			string(domain.RoleParticipant),
		)),
	)
}

func (req *UpdateUserRoleRequest) UserUUID() uuid.UUID {
	return uuid.MustParse(req.UserID)
}

type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

func (req *DeleteUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, isUUID),
	)
}

func (req *DeleteUserRequest) UserUUID() uuid.UUID {
	return uuid.MustParse(req.UserID)
}
