package auth

import (
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	BranchID uuid.UUID
	Role     enums.MemberRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID        `json:"user_id"`
	BranchID uuid.UUID        `json:"branch_id"`
	Role     enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
