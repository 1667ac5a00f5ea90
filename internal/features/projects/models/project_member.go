package projects_models

import (
	"time"

	projects_enums "eagleflow/internal/features/projects/enums"
	users_enums "eagleflow/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectMember struct {
	ID               uuid.UUID                       `json:"id"               gorm:"column:id"`
	ProjectID        uuid.UUID                       `json:"projectId"        gorm:"column:project_id"`
	UserID           uuid.UUID                       `json:"userId"           gorm:"column:user_id"`
	Role             users_enums.ProjectRole         `json:"role"             gorm:"column:role"`
	InvitationStatus projects_enums.InvitationStatus `json:"invitationStatus" gorm:"column:invitation_status"`
	InvitedBy        *uuid.UUID                      `json:"invitedBy"        gorm:"column:invited_by"`
	InvitationEmail  *string                         `json:"invitationEmail"  gorm:"column:invitation_email"`
	CreatedAt        time.Time                       `json:"createdAt"        gorm:"column:created_at"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
