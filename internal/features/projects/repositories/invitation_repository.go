package projects_repositories

import (
	"errors"
	"time"

	projects_enums "eagleflow/internal/features/projects/enums"
	projects_models "eagleflow/internal/features/projects/models"
	"eagleflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(invitation *projects_models.ProjectInvitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetInvitationByID(
	invitationID uuid.UUID,
) (*projects_models.ProjectInvitation, error) {
	var invitation projects_models.ProjectInvitation

	if err := storage.GetDb().Where("id = ?", invitationID).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetInvitationByToken(
	token string,
) (*projects_models.ProjectInvitation, error) {
	var invitation projects_models.ProjectInvitation

	err := storage.GetDb().Where("token = ?", token).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetPendingInvitationByProjectAndEmail(
	projectID uuid.UUID,
	email string,
) (*projects_models.ProjectInvitation, error) {
	var invitation projects_models.ProjectInvitation

	err := storage.GetDb().
		Where("project_id = ? AND LOWER(email) = LOWER(?) AND status = ?",
			projectID, email, projects_enums.InvitationStatusPending).
		First(&invitation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetProjectInvitations(
	projectID uuid.UUID,
) ([]*projects_models.ProjectInvitation, error) {
	var invitations = make([]*projects_models.ProjectInvitation, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) UpdateInvitationStatus(
	invitationID uuid.UUID,
	status projects_enums.InvitationStatus,
) error {
	return storage.GetDb().
		Model(&projects_models.ProjectInvitation{}).
		Where("id = ?", invitationID).
		Update("status", status).Error
}

func (r *InvitationRepository) DeleteInvitation(invitationID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.ProjectInvitation{}, invitationID).Error
}

// AcceptInvitationAndCreateMember marks the invitation accepted and inserts
// the member row in one transaction. The status guard in the update keeps two
// concurrent accepts from both succeeding.
func (r *InvitationRepository) AcceptInvitationAndCreateMember(
	invitation *projects_models.ProjectInvitation,
	member *projects_models.ProjectMember,
) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&projects_models.ProjectInvitation{}).
			Where("id = ? AND status = ?", invitation.ID, projects_enums.InvitationStatusPending).
			Update("status", projects_enums.InvitationStatusAccepted)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errors.New("invitation is no longer pending")
		}

		return tx.Create(member).Error
	})
}

// MarkExpiredInvitationsRejected closes out pending invitations whose
// expiry has passed. Returns the number of affected rows.
func (r *InvitationRepository) MarkExpiredInvitationsRejected(now time.Time) (int64, error) {
	result := storage.GetDb().
		Model(&projects_models.ProjectInvitation{}).
		Where("status = ? AND expires_at < ?", projects_enums.InvitationStatusPending, now).
		Update("status", projects_enums.InvitationStatusRejected)

	return result.RowsAffected, result.Error
}
