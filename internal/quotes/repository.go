package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
)

// Repository wires quote snapshot persistence.
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

// FindByMeasurement loads the snapshot with lines and extras.
func (r *Repository) FindByMeasurement(ctx context.Context, branchID, measurementID uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Extras", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&quote, "measurement_id = ? AND branch_id = ?", measurementID, branchID).
		Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Create inserts the snapshot together with its lines and extras.
func (r *Repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// DeleteByMeasurement removes a previous snapshot and its children.
func (r *Repository) DeleteByMeasurement(ctx context.Context, measurementID uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	var ids []uuid.UUID
	if err := tx.Model(&models.Quote{}).
		Where("measurement_id = ?", measurementID).
		Pluck("id", &ids).
		Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Where("quote_id IN ?", ids).Delete(&models.QuoteItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quote_id IN ?", ids).Delete(&models.QuoteExtra{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Quote{}).Error
}
