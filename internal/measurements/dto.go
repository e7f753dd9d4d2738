package measurements

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
)

// CustomerInput is the embedded customer payload on measurement creation.
type CustomerInput struct {
	Name       string  `json:"name" validate:"required"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Street     string  `json:"street" validate:"required"`
	PostalCode string  `json:"postal_code" validate:"required"`
	City       string  `json:"city" validate:"required"`
}

// CreateMeasurementInput holds the validated payload to open a measurement.
type CreateMeasurementInput struct {
	Customer     CustomerInput
	AssigneeID   *uuid.UUID
	TeamID       *uuid.UUID
	ScheduledFor *time.Time
	SpecValues   json.RawMessage
	Notes        *string
}

// UpdateMeasurementInput holds optional mutation values.
type UpdateMeasurementInput struct {
	AssigneeID   *uuid.UUID
	TeamID       *uuid.UUID
	ScheduledFor *time.Time
	SpecValues   *json.RawMessage
	Notes        *string
}

// ListMeasurementsInput filters the branch-scoped listing.
type ListMeasurementsInput struct {
	Status *enums.MeasurementStatus
	Limit  int
	Cursor string
}

// CustomerDTO is the customer projection on measurement reads.
type CustomerDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
}

// StatusHistoryDTO is one audit-trail entry.
type StatusHistoryDTO struct {
	FromStatus  enums.MeasurementStatus `json:"from_status"`
	ToStatus    enums.MeasurementStatus `json:"to_status"`
	ChangedByID *uuid.UUID              `json:"changed_by_id,omitempty"`
	Note        *string                 `json:"note,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// MeasurementDTO is the full read projection of a measurement.
type MeasurementDTO struct {
	ID           uuid.UUID               `json:"id"`
	BranchID     uuid.UUID               `json:"branch_id"`
	Customer     CustomerDTO             `json:"customer"`
	AssigneeID   *uuid.UUID              `json:"assignee_id,omitempty"`
	TeamID       *uuid.UUID              `json:"team_id,omitempty"`
	Status       enums.MeasurementStatus `json:"status"`
	ScheduledFor *time.Time              `json:"scheduled_for,omitempty"`
	SpecValues   json.RawMessage         `json:"spec_values,omitempty"`
	Notes        *string                 `json:"notes,omitempty"`
	History      []StatusHistoryDTO      `json:"history,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// MeasurementListResult is one page of measurements.
type MeasurementListResult struct {
	Measurements []MeasurementDTO `json:"measurements"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

func toCustomerDTO(c *models.Customer) CustomerDTO {
	if c == nil {
		return CustomerDTO{}
	}
	return CustomerDTO{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Street:     c.Street,
		PostalCode: c.PostalCode,
		City:       c.City,
	}
}

func toDTO(m *models.Measurement) MeasurementDTO {
	dto := MeasurementDTO{
		ID:           m.ID,
		BranchID:     m.BranchID,
		Customer:     toCustomerDTO(m.Customer),
		AssigneeID:   m.AssigneeID,
		TeamID:       m.TeamID,
		Status:       m.Status,
		ScheduledFor: m.ScheduledFor,
		SpecValues:   m.SpecValues,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, entry := range m.History {
		dto.History = append(dto.History, StatusHistoryDTO{
			FromStatus:  entry.FromStatus,
			ToStatus:    entry.ToStatus,
			ChangedByID: entry.ChangedByID,
			Note:        entry.Note,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return dto
}
