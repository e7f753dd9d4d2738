package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
)

// Measurement is one site-measurement record: a customer, the filled
// specification fields, scheduling data and the workflow status.
type Measurement struct {
	ID           uuid.UUID                   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID     uuid.UUID                   `gorm:"column:branch_id;type:uuid;not null;index"`
	CustomerID   uuid.UUID                   `gorm:"column:customer_id;type:uuid;not null"`
	AssigneeID   *uuid.UUID                  `gorm:"column:assignee_id;type:uuid"`
	TeamID       *uuid.UUID                  `gorm:"column:team_id;type:uuid"`
	Status       enums.MeasurementStatus     `gorm:"column:status;type:measurement_status;not null;default:'new'"`
	ScheduledFor *time.Time                  `gorm:"column:scheduled_for"`
	SpecValues   json.RawMessage             `gorm:"column:spec_values;type:jsonb"`
	Notes        *string                     `gorm:"column:notes"`
	Customer     *Customer                   `gorm:"foreignKey:CustomerID"`
	Quote        *Quote                      `gorm:"foreignKey:MeasurementID"`
	History      []MeasurementStatusHistory  `gorm:"foreignKey:MeasurementID;constraint:OnDelete:CASCADE"`
	Signatures   []SignatureRequest          `gorm:"foreignKey:MeasurementID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

// MeasurementStatusHistory is one entry in the workflow audit trail.
type MeasurementStatusHistory struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MeasurementID uuid.UUID               `gorm:"column:measurement_id;type:uuid;not null;index"`
	FromStatus    enums.MeasurementStatus `gorm:"column:from_status;type:measurement_status;not null"`
	ToStatus      enums.MeasurementStatus `gorm:"column:to_status;type:measurement_status;not null"`
	ChangedByID   *uuid.UUID              `gorm:"column:changed_by_id;type:uuid"`
	Note          *string                 `gorm:"column:note"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
}
