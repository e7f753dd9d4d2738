package models

import (
	"time"

	"github.com/google/uuid"
)

// Team groups branch users for scheduling measurement appointments.
type Team struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID  uuid.UUID    `gorm:"column:branch_id;type:uuid;not null;index"`
	Name      string       `gorm:"column:name;not null"`
	Color     *string      `gorm:"column:color"`
	Members   []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

// TeamMember links a user into a team.
type TeamMember struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TeamID    uuid.UUID `gorm:"column:team_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
