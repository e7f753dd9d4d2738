package branches

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuatkeles/aufmass-app-sub001/pkg/db/models"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/enums"
)

// BranchDTO is the branch profile projection.
type BranchDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Phone      *string   `json:"phone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	LogoURL    *string   `json:"logo_url,omitempty"`
}

// UserDTO is the branch staff projection.
type UserDTO struct {
	ID       uuid.UUID        `json:"id"`
	Email    string           `json:"email"`
	Name     string           `json:"name"`
	Role     enums.MemberRole `json:"role"`
	IsActive bool             `json:"is_active"`
}

// TeamMemberDTO is one user inside a team.
type TeamMemberDTO struct {
	UserID  uuid.UUID `json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}

// TeamDTO is the team projection with its members.
type TeamDTO struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Color   *string         `json:"color,omitempty"`
	Members []TeamMemberDTO `json:"members,omitempty"`
}

// CreateTeamInput holds the validated payload to create a team.
type CreateTeamInput struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color,omitempty"`
}

func toBranchDTO(b *models.Branch) *BranchDTO {
	return &BranchDTO{
		ID:         b.ID,
		Name:       b.Name,
		Slug:       b.Slug,
		Street:     b.Street,
		PostalCode: b.PostalCode,
		City:       b.City,
		Phone:      b.Phone,
		Email:      b.Email,
		LogoURL:    b.LogoURL,
	}
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func toTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:    team.ID,
		Name:  team.Name,
		Color: team.Color,
	}
	for _, member := range team.Members {
		dto.Members = append(dto.Members, TeamMemberDTO{
			UserID:  member.UserID,
			AddedAt: member.CreatedAt,
		})
	}
	return dto
}
