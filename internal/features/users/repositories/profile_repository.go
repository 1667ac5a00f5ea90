package users_repositories

import (
	users_models "eagleflow/internal/features/users/models"
	"eagleflow/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct{}

func (r *ProfileRepository) CreateProfile(profile *users_models.Profile) error {
	return storage.GetDb().Create(profile).Error
}

func (r *ProfileRepository) GetProfileByUserID(userID uuid.UUID) (*users_models.Profile, error) {
	var profile users_models.Profile

	if err := storage.GetDb().Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) UpdateProfile(profile *users_models.Profile) error {
	return storage.GetDb().Save(profile).Error
}

func (r *ProfileRepository) UpdateAvatarURL(userID uuid.UUID, avatarURL string) error {
	result := storage.GetDb().Model(&users_models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"avatar_url": avatarURL,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
