package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
)

// User is a staff account scoped to a branch.
type User struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID  uuid.UUID        `gorm:"column:branch_id;type:uuid;not null;index"`
	Email     string           `gorm:"column:email;not null;uniqueIndex"`
	Name      string           `gorm:"column:name;not null"`
	Role      enums.MemberRole `gorm:"column:role;type:member_role;not null;default:'staff'"`
	IsActive  bool             `gorm:"column:is_active;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
