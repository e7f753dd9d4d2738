package measurements

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/pagination"
)

// Service exposes branch-scoped measurement operations.
type Service interface {
	Create(ctx context.Context, branchID uuid.UUID, input CreateMeasurementInput) (*MeasurementDTO, error)
	Update(ctx context.Context, branchID, id uuid.UUID, input UpdateMeasurementInput) (*MeasurementDTO, error)
	Get(ctx context.Context, branchID, id uuid.UUID) (*MeasurementDTO, error)
	List(ctx context.Context, branchID uuid.UUID, input ListMeasurementsInput) (*MeasurementListResult, error)
	Transition(ctx context.Context, branchID, id, actorID uuid.UUID, target enums.MeasurementStatus, note *string) (*MeasurementDTO, error)
}

// allowedTransitions is the workflow graph. Trash is reachable from every
// state; otherwise the flow only moves forward.
var allowedTransitions = map[enums.MeasurementStatus][]enums.MeasurementStatus{
	enums.MeasurementStatusNew:       {enums.MeasurementStatusScheduled, enums.MeasurementStatusTrash},
	enums.MeasurementStatusScheduled: {enums.MeasurementStatusCompleted, enums.MeasurementStatusTrash},
	enums.MeasurementStatusCompleted: {enums.MeasurementStatusTrash},
	enums.MeasurementStatusTrash:     {},
}

func transitionAllowed(from, to enums.MeasurementStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// service implements the measurement service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a measurement service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("measurement repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create opens a measurement together with its customer in one transaction.
func (s *service) Create(ctx context.Context, branchID uuid.UUID, input CreateMeasurementInput) (*MeasurementDTO, error) {
	if branchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	var createdID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		customer := &models.Customer{
			ID:         uuid.New(),
			BranchID:   branchID,
			Name:       strings.TrimSpace(input.Customer.Name),
			Email:      input.Customer.Email,
			Phone:      input.Customer.Phone,
			Street:     input.Customer.Street,
			PostalCode: input.Customer.PostalCode,
			City:       input.Customer.City,
		}
		if _, err := txRepo.CreateCustomer(ctx, customer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer")
		}

		measurement := &models.Measurement{
			ID:           uuid.New(),
			BranchID:     branchID,
			CustomerID:   customer.ID,
			AssigneeID:   input.AssigneeID,
			TeamID:       input.TeamID,
			Status:       enums.MeasurementStatusNew,
			ScheduledFor: input.ScheduledFor,
			SpecValues:   input.SpecValues,
			Notes:        input.Notes,
		}
		if _, err := txRepo.Create(ctx, measurement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert measurement")
		}
		createdID = measurement.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, branchID, createdID)
}

// Update applies the provided optional fields. Status is never touched here;
// workflow moves go through Transition.
func (s *service) Update(ctx context.Context, branchID, id uuid.UUID, input UpdateMeasurementInput) (*MeasurementDTO, error) {
	measurement, err := s.load(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	if measurement.Status == enums.MeasurementStatusTrash {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "trashed measurement cannot be edited")
	}

	if input.AssigneeID != nil {
		measurement.AssigneeID = input.AssigneeID
	}
	if input.TeamID != nil {
		measurement.TeamID = input.TeamID
	}
	if input.ScheduledFor != nil {
		measurement.ScheduledFor = input.ScheduledFor
	}
	if input.SpecValues != nil {
		measurement.SpecValues = *input.SpecValues
	}
	if input.Notes != nil {
		measurement.Notes = input.Notes
	}

	if _, err := s.repo.Update(ctx, measurement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update measurement")
	}
	return s.Get(ctx, branchID, id)
}

// Get loads one measurement with customer and history.
func (s *service) Get(ctx context.Context, branchID, id uuid.UUID) (*MeasurementDTO, error) {
	measurement, err := s.load(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(measurement)
	return &dto, nil
}

// List returns one branch-scoped page.
func (s *service) List(ctx context.Context, branchID uuid.UUID, input ListMeasurementsInput) (*MeasurementListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown measurement status filter")
	}

	rows, nextCursor, err := s.repo.List(ctx, listQuery{
		BranchID:   branchID,
		Status:     input.Status,
		Pagination: pagination.Params{Limit: input.Limit, Cursor: input.Cursor},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list measurements")
	}

	result := &MeasurementListResult{NextCursor: nextCursor}
	for i := range rows {
		result.Measurements = append(result.Measurements, toDTO(&rows[i]))
	}
	return result, nil
}

// Transition moves the measurement through the workflow graph and appends
// the audit entry in the same transaction.
func (s *service) Transition(ctx context.Context, branchID, id, actorID uuid.UUID, target enums.MeasurementStatus, note *string) (*MeasurementDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown measurement status")
	}

	measurement, err := s.load(ctx, branchID, id)
	if err != nil {
		return nil, err
	}

	from := measurement.Status
	if !transitionAllowed(from, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("transition %s -> %s is not allowed", from, target))
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		measurement.Status = target
		if _, err := txRepo.Update(ctx, measurement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update measurement status")
		}

		entry := &models.MeasurementStatusHistory{
			ID:            uuid.New(),
			MeasurementID: measurement.ID,
			FromStatus:    from,
			ToStatus:      target,
			Note:          note,
		}
		if actorID != uuid.Nil {
			entry.ChangedByID = &actorID
		}
		if err := txRepo.AppendHistory(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append status history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, branchID, id)
}

func (s *service) load(ctx context.Context, branchID, id uuid.UUID) (*models.Measurement, error) {
	if branchID == uuid.Nil || id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id and measurement id are required")
	}
	measurement, err := s.repo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load measurement")
	}
	return measurement, nil
}
