package users_services

import (
	"errors"
	"fmt"
	"time"

	users_dto "eagleflow/internal/features/users/dto"
	users_interfaces "eagleflow/internal/features/users/interfaces"
	users_models "eagleflow/internal/features/users/models"
	users_repositories "eagleflow/internal/features/users/repositories"
)

type ProfileService struct {
	profileRepository *users_repositories.ProfileRepository
	auditLogWriter    users_interfaces.AuditLogWriter
}

func (s *ProfileService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProfileService) GetProfile(user *users_models.User) (*users_dto.ProfileResponseDTO, error) {
	profile, err := s.profileRepository.GetProfileByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile == nil {
		now := time.Now().UTC()
		profile = &users_models.Profile{
			UserID:    user.ID,
			Email:     user.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.profileRepository.CreateProfile(profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	}

	return s.toResponseDTO(profile), nil
}

func (s *ProfileService) UpdateProfile(
	user *users_models.User,
	request *users_dto.UpdateProfileRequestDTO,
) (*users_dto.ProfileResponseDTO, error) {
	profile, err := s.profileRepository.GetProfileByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile == nil {
		return nil, errors.New("profile not found")
	}

	if request.FullName != nil {
		profile.FullName = *request.FullName
	}

	if request.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *request.BirthDate)
		if err != nil {
			return nil, errors.New("invalid birth date")
		}

		profile.BirthDate = birthDate
	}

	if request.Company != nil {
		profile.Company = *request.Company
	}

	if request.JobTitle != nil {
		profile.JobTitle = *request.JobTitle
	}

	if request.City != nil {
		profile.City = *request.City
	}

	if request.Gender != nil {
		if !request.Gender.IsValid() {
			return nil, errors.New("invalid gender")
		}

		profile.Gender = *request.Gender
	}

	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepository.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.auditLogWriter.WriteAuditLog("Profile updated", &user.ID, nil)

	return s.toResponseDTO(profile), nil
}

func (s *ProfileService) toResponseDTO(profile *users_models.Profile) *users_dto.ProfileResponseDTO {
	birthDate := ""
	if !profile.BirthDate.IsZero() {
		birthDate = profile.BirthDate.Format("2006-01-02")
	}

	return &users_dto.ProfileResponseDTO{
		UserID:    profile.UserID,
		FullName:  profile.FullName,
		BirthDate: birthDate,
		Company:   profile.Company,
		JobTitle:  profile.JobTitle,
		Email:     profile.Email,
		City:      profile.City,
		Gender:    profile.Gender,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
