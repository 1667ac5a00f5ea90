package projects_repositories

import (
	"time"

	projects_models "eagleflow/internal/features/projects/models"
	users_enums "eagleflow/internal/features/users/enums"
	"eagleflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

// CreateProjectWithOwner inserts the project together with its owner
// membership row, so a project never exists without an owner.
func (r *ProjectRepository) CreateProjectWithOwner(
	project *projects_models.Project,
	owner *projects_models.ProjectMember,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		owner.ProjectID = project.ID
		owner.Role = users_enums.ProjectRoleOwner

		return tx.Create(owner).Error
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Save(project).Error
}

// DeleteProjectCascade removes the project and its dependent rows in one
// transaction.
func (r *ProjectRepository) DeleteProjectCascade(projectID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("project_id = ?", projectID).
			Delete(&projects_models.ProjectInvitation{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("project_id = ?", projectID).
			Delete(&projects_models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&projects_models.Project{}, projectID).Error
	})
}

func (r *ProjectRepository) UpdateProjectImageURL(projectID uuid.UUID, imageURL string) error {
	result := storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"image_url":  imageURL,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
