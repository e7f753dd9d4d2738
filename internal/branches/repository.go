package branches

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
)

// Repository wires branch, user and team persistence.
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

// FindBranch loads a branch by ID.
func (r *Repository) FindBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListUsers returns the active staff of a branch ordered by name.
func (r *Repository) ListUsers(ctx context.Context, branchID uuid.UUID) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND is_active = ?", branchID, true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindUser loads one user scoped to a branch.
func (r *Repository) FindUser(ctx context.Context, branchID, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ? AND branch_id = ?", userID, branchID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTeams returns the teams of a branch with members preloaded.
func (r *Repository) ListTeams(ctx context.Context, branchID uuid.UUID) ([]models.Team, error) {
	var rows []models.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindTeam loads one team with members, scoped to a branch.
func (r *Repository) FindTeam(ctx context.Context, branchID, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&team, "id = ? AND branch_id = ?", teamID, branchID).
		Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CreateTeam inserts a team row.
func (r *Repository) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// AddTeamMember links a user into a team.
func (r *Repository) AddTeamMember(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// MemberExists reports whether the user is already in the team.
func (r *Repository) MemberExists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).
		Error
	return count > 0, err
}
