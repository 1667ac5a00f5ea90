package projects_dto

import (
	"time"

	projects_enums "eagleflow/internal/features/projects/enums"
	users_enums "eagleflow/internal/features/users/enums"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name                string `json:"name"                binding:"required,min=1,max=255"`
	Description         string `json:"description"         binding:"max=4000"`
	Size                string `json:"size"                binding:"max=255"`
	Location            string `json:"location"            binding:"max=255"`
	MainContractor      string `json:"mainContractor"      binding:"max=255"`
	TechnicalContractor string `json:"technicalContractor" binding:"max=255"`
	Client              string `json:"client"              binding:"max=255"`
	Address             string `json:"address"             binding:"max=255"`
}

type UpdateProjectRequestDTO struct {
	Name                *string                       `json:"name"                binding:"omitempty,min=1,max=255"`
	Description         *string                       `json:"description"         binding:"omitempty,max=4000"`
	Size                *string                       `json:"size"                binding:"omitempty,max=255"`
	Location            *string                       `json:"location"            binding:"omitempty,max=255"`
	MainContractor      *string                       `json:"mainContractor"      binding:"omitempty,max=255"`
	TechnicalContractor *string                       `json:"technicalContractor" binding:"omitempty,max=255"`
	Client              *string                       `json:"client"              binding:"omitempty,max=255"`
	Address             *string                       `json:"address"             binding:"omitempty,max=255"`
	Status              *projects_enums.ProjectStatus `json:"status"`
	Progress            *int                          `json:"progress"`
}

type ProjectResponseDTO struct {
	ID                  uuid.UUID                    `json:"id"`
	Name                string                       `json:"name"`
	Description         string                       `json:"description"`
	Status              projects_enums.ProjectStatus `json:"status"`
	Progress            int                          `json:"progress"`
	Size                string                       `json:"size"`
	Location            string                       `json:"location"`
	MainContractor      string                       `json:"mainContractor"`
	TechnicalContractor string                       `json:"technicalContractor"`
	Client              string                       `json:"client"`
	Address             string                       `json:"address"`
	ImageURL            *string                      `json:"imageUrl"`
	CreatedBy           uuid.UUID                    `json:"createdBy"`
	CreatedAt           time.Time                    `json:"createdAt"`
	UpdatedAt           time.Time                    `json:"updatedAt"`

	// User's role in this project (populated when fetching for specific user)
	UserRole *users_enums.ProjectRole `json:"userRole,omitempty" gorm:"column:user_role"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type ChangeMemberRoleRequestDTO struct {
	Role users_enums.ProjectRole `json:"role" binding:"required"`
}

type TransferOwnershipRequestDTO struct {
	NewOwnerEmail string `json:"newOwnerEmail" binding:"required,email"`
}

type ProjectMemberResponseDTO struct {
	ID               uuid.UUID                       `json:"id"               gorm:"column:id"`
	UserID           uuid.UUID                       `json:"userId"           gorm:"column:user_id"`
	Email            string                          `json:"email"            gorm:"column:email"`
	FullName         string                          `json:"fullName"         gorm:"column:full_name"`
	AvatarURL        *string                         `json:"avatarUrl"        gorm:"column:avatar_url"`
	Role             users_enums.ProjectRole         `json:"role"             gorm:"column:role"`
	InvitationStatus projects_enums.InvitationStatus `json:"invitationStatus" gorm:"column:invitation_status"`
	CreatedAt        time.Time                       `json:"createdAt"        gorm:"column:created_at"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberResponseDTO `json:"members"`
}

// Invitation DTOs
type CreateInvitationRequestDTO struct {
	Email string                  `json:"email" binding:"required,email"`
	Role  users_enums.ProjectRole `json:"role"  binding:"required"`
}

type InvitationResponseDTO struct {
	ID        uuid.UUID                       `json:"id"`
	ProjectID uuid.UUID                       `json:"projectId"`
	Email     string                          `json:"email"`
	Role      users_enums.ProjectRole         `json:"role"`
	InvitedBy uuid.UUID                       `json:"invitedBy"`
	Status    projects_enums.InvitationStatus `json:"status"`
	CreatedAt time.Time                       `json:"createdAt"`
	ExpiresAt time.Time                       `json:"expiresAt"`
}

type CreateInvitationResponseDTO struct {
	Invitation InvitationResponseDTO `json:"invitation"`
	Token      string                `json:"token"`
}

type ListInvitationsResponseDTO struct {
	Invitations []InvitationResponseDTO `json:"invitations"`
}

type AcceptInvitationRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type AcceptInvitationResponseDTO struct {
	ProjectID uuid.UUID               `json:"projectId"`
	Role      users_enums.ProjectRole `json:"role"`
}
