package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
)

// SignatureRequest tracks an e-signature round-trip for a measurement's
// quote document with the external provider.
type SignatureRequest struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MeasurementID uuid.UUID             `gorm:"column:measurement_id;type:uuid;not null;index"`
	Provider      string                `gorm:"column:provider;not null"`
	ExternalID    *string               `gorm:"column:external_id"`
	SignerEmail   string                `gorm:"column:signer_email;not null"`
	Status        enums.SignatureStatus `gorm:"column:status;type:signature_status;not null;default:'pending'"`
	SentAt        *time.Time            `gorm:"column:sent_at"`
	CompletedAt   *time.Time            `gorm:"column:completed_at"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
