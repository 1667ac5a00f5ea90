package projects_repositories

import (
	"errors"
	"time"

	projects_dto "eagleflow/internal/features/projects/dto"
	projects_enums "eagleflow/internal/features/projects/enums"
	projects_models "eagleflow/internal/features/projects/models"
	users_enums "eagleflow/internal/features/users/enums"
	"eagleflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMember(member *projects_models.ProjectMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(member).Error
}

func (r *MembershipRepository) GetMemberByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMember, error) {
	var member projects_models.ProjectMember

	if err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

// GetProjectMembers returns members joined with their profiles, owner first.
func (r *MembershipRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]*projects_dto.ProjectMemberResponseDTO, error) {
	var members []*projects_dto.ProjectMemberResponseDTO

	err := storage.GetDb().
		Table("project_members pm").
		Select(`pm.id, pm.user_id, u.email, pr.full_name, pr.avatar_url,
			pm.role, pm.invitation_status, pm.created_at`).
		Joins("JOIN users u ON pm.user_id = u.id").
		Joins("LEFT JOIN profiles pr ON pm.user_id = pr.user_id").
		Where("pm.project_id = ?", projectID).
		Order("CASE WHEN pm.role = 'OWNER' THEN 0 ELSE 1 END, pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(userID, projectID uuid.UUID, role users_enums.ProjectRole) error {
	return storage.GetDb().
		Model(&projects_models.ProjectMember{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Update("role", role).Error
}

func (r *MembershipRepository) RemoveMember(userID, projectID uuid.UUID) error {
	return storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&projects_models.ProjectMember{}).Error
}

func (r *MembershipRepository) GetUserProjectRole(projectID, userID uuid.UUID) (*users_enums.ProjectRole, error) {
	var member projects_models.ProjectMember
	err := storage.GetDb().
		Where("project_id = ? AND user_id = ? AND invitation_status = ?",
			projectID, userID, projects_enums.InvitationStatusAccepted).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member.Role, nil
}

func (r *MembershipRepository) GetProjectOwner(projectID uuid.UUID) (*projects_models.ProjectMember, error) {
	var member projects_models.ProjectMember

	err := storage.GetDb().
		Where("project_id = ? AND role = ?", projectID, users_enums.ProjectRoleOwner).
		First(&member).Error

	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *MembershipRepository) GetProjectsWithRolesByUserID(
	userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().
		Table("projects p").
		Select(`p.id, p.name, p.description, p.status, p.progress, p.size,
			p.location, p.main_contractor, p.technical_contractor, p.client,
			p.address, p.image_url, p.created_by, p.created_at, p.updated_at,
			pm.role as user_role`).
		Joins("JOIN project_members pm ON p.id = pm.project_id").
		Where("pm.user_id = ? AND pm.invitation_status = ?",
			userID, projects_enums.InvitationStatusAccepted).
		Order("p.name ASC").
		Scan(&results).Error

	return results, err
}
