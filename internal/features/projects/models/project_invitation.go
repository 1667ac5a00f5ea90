package projects_models

import (
	"time"

	projects_enums "eagleflow/internal/features/projects/enums"
	users_enums "eagleflow/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectInvitation struct {
	ID        uuid.UUID                       `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID                       `json:"projectId" gorm:"column:project_id"`
	Email     string                          `json:"email"     gorm:"column:email"`
	Role      users_enums.ProjectRole         `json:"role"      gorm:"column:role"`
	InvitedBy uuid.UUID                       `json:"invitedBy" gorm:"column:invited_by"`
	Token     string                          `json:"-"         gorm:"column:token"`
	Status    projects_enums.InvitationStatus `json:"status"    gorm:"column:status"`
	CreatedAt time.Time                       `json:"createdAt" gorm:"column:created_at"`
	ExpiresAt time.Time                       `json:"expiresAt" gorm:"column:expires_at"`
}

func (ProjectInvitation) TableName() string {
	return "project_invitations"
}

func (i *ProjectInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
