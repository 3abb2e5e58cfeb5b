package domain

import "github.com/google/uuid"

// Session identifies the caller of a service operation. It is resolved once
// per request and passed explicitly; there is no process-wide current user.
type Session struct {
	UserID uuid.UUID
	Role   Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanManage reports whether the caller may manage a resource owned by ownerID.
func (s Session) CanManage(ownerID uuid.UUID) bool {
	return s.IsAdmin() || s.UserID == ownerID
}
