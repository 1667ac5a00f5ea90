package users_testing

import (
	"fmt"
	"time"

	users_dto "eagleflow/internal/features/users/dto"
	users_enums "eagleflow/internal/features/users/enums"
	users_models "eagleflow/internal/features/users/models"
	users_repositories "eagleflow/internal/features/users/repositories"
	users_services "eagleflow/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser() *users_dto.SignInResponseDTO {
	userID := uuid.New()
	email := fmt.Sprintf("user-%s@test.com", userID.String()[:8])

	return CreateTestUserWithEmail(email)
}

func CreateTestUserWithEmail(email string) *users_dto.SignInResponseDTO {
	userID := uuid.New()
	now := time.Now().UTC()

	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		HashedPassword:       "$2a$10$test",
		PasswordCreationTime: now,
		Status:               users_enums.UserStatusActive,
		CreatedAt:            now,
	}

	profile := &users_models.Profile{
		UserID:    userID,
		FullName:  "Test User",
		BirthDate: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Company:   "Test Company",
		JobTitle:  "VVS Engineer",
		Email:     email,
		City:      "Oslo",
		Gender:    users_enums.GenderMale,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUserWithProfile(user, profile); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	response.Email = user.Email

	return response
}
