package measurements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/pagination"
)

// Repository wires measurement persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateCustomer inserts a customer row.
func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Create inserts a measurement row.
func (r *Repository) Create(ctx context.Context, measurement *models.Measurement) (*models.Measurement, error) {
	if err := r.db.WithContext(ctx).Create(measurement).Error; err != nil {
		return nil, err
	}
	return measurement, nil
}

// Update saves an existing measurement row.
func (r *Repository) Update(ctx context.Context, measurement *models.Measurement) (*models.Measurement, error) {
	if err := r.db.WithContext(ctx).Save(measurement).Error; err != nil {
		return nil, err
	}
	return measurement, nil
}

// FindByID loads a measurement with customer and history, scoped to a branch.
func (r *Repository) FindByID(ctx context.Context, branchID, id uuid.UUID) (*models.Measurement, error) {
	var measurement models.Measurement
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&measurement, "id = ? AND branch_id = ?", id, branchID).
		Error
	if err != nil {
		return nil, err
	}
	return &measurement, nil
}

// AppendHistory inserts one workflow audit entry.
func (r *Repository) AppendHistory(ctx context.Context, entry *models.MeasurementStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

type listQuery struct {
	BranchID   uuid.UUID
	Status     *enums.MeasurementStatus
	Pagination pagination.Params
}

// List returns a branch-scoped page ordered by creation time descending.
func (r *Repository) List(ctx context.Context, query listQuery) ([]models.Measurement, string, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Preload("Customer").
		Where("branch_id = ?", query.BranchID)

	if query.Status != nil {
		qb = qb.Where("status = ?", *query.Status)
	} else {
		// The default listing hides trashed records.
		qb = qb.Where("status <> ?", enums.MeasurementStatusTrash)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Measurement
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}
