package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	pkgerrors "github.com/fuatkeles/aufmass-app-sub001/pkg/errors"
)

// Service exposes branch profile, staff and team operations.
type Service interface {
	GetBranch(ctx context.Context, branchID uuid.UUID) (*BranchDTO, error)
	ListUsers(ctx context.Context, branchID uuid.UUID) ([]UserDTO, error)
	ListTeams(ctx context.Context, branchID uuid.UUID) ([]TeamDTO, error)
	CreateTeam(ctx context.Context, branchID uuid.UUID, input CreateTeamInput) (*TeamDTO, error)
	AddTeamMember(ctx context.Context, branchID, teamID, userID uuid.UUID) (*TeamDTO, error)
}

// service implements the branch service.
type service struct {
	repo *Repository
}

// NewService constructs a branch service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	return &service{repo: repo}, nil
}

// GetBranch loads the calling user's branch profile.
func (s *service) GetBranch(ctx context.Context, branchID uuid.UUID) (*BranchDTO, error) {
	branch, err := s.repo.FindBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load branch")
	}
	return toBranchDTO(branch), nil
}

// ListUsers returns the branch's active staff.
func (s *service) ListUsers(ctx context.Context, branchID uuid.UUID) ([]UserDTO, error) {
	rows, err := s.repo.ListUsers(ctx, branchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list branch users")
	}
	users := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUserDTO(row))
	}
	return users, nil
}

// ListTeams returns the branch's teams with membership.
func (s *service) ListTeams(ctx context.Context, branchID uuid.UUID) ([]TeamDTO, error) {
	rows, err := s.repo.ListTeams(ctx, branchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list teams")
	}
	teams := make([]TeamDTO, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, toTeamDTO(row))
	}
	return teams, nil
}

// CreateTeam adds a team to the branch.
func (s *service) CreateTeam(ctx context.Context, branchID uuid.UUID, input CreateTeamInput) (*TeamDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
	}

	team := &models.Team{
		ID:       uuid.New(),
		BranchID: branchID,
		Name:     name,
		Color:    input.Color,
	}
	if _, err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert team")
	}
	dto := toTeamDTO(*team)
	return &dto, nil
}

// AddTeamMember links a branch user into a branch team.
func (s *service) AddTeamMember(ctx context.Context, branchID, teamID, userID uuid.UUID) (*TeamDTO, error) {
	team, err := s.repo.FindTeam(ctx, branchID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load team")
	}

	if _, err := s.repo.FindUser(ctx, branchID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found in branch")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	exists, err := s.repo.MemberExists(ctx, teamID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check membership")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user is already a team member")
	}

	member := &models.TeamMember{
		ID:     uuid.New(),
		TeamID: teamID,
		UserID: userID,
	}
	if err := s.repo.AddTeamMember(ctx, member); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert team member")
	}

	team, err = s.repo.FindTeam(ctx, branchID, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload team")
	}
	dto := toTeamDTO(*team)
	return &dto, nil
}
