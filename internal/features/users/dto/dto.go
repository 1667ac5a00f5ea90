package users_dto

import (
	"time"

	users_enums "eagleflow/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email     string             `json:"email"     binding:"required,email"`
	Password  string             `json:"password"  binding:"required,min=8"`
	FullName  string             `json:"fullName"  binding:"required,min=2,max=255"`
	BirthDate string             `json:"birthDate" binding:"required"` // YYYY-MM-DD
	Company   string             `json:"company"   binding:"required,min=2,max=255"`
	JobTitle  string             `json:"jobTitle"  binding:"required,min=2,max=255"`
	City      string             `json:"city"      binding:"required,min=2,max=255"`
	Gender    users_enums.Gender `json:"gender"    binding:"required"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UpdateProfileRequestDTO struct {
	FullName  *string             `json:"fullName"  binding:"omitempty,min=2,max=255"`
	BirthDate *string             `json:"birthDate"` // YYYY-MM-DD
	Company   *string             `json:"company"   binding:"omitempty,min=2,max=255"`
	JobTitle  *string             `json:"jobTitle"  binding:"omitempty,min=2,max=255"`
	City      *string             `json:"city"      binding:"omitempty,min=2,max=255"`
	Gender    *users_enums.Gender `json:"gender"`
}

type ProfileResponseDTO struct {
	UserID    uuid.UUID          `json:"userId"`
	FullName  string             `json:"fullName"`
	BirthDate string             `json:"birthDate"`
	Company   string             `json:"company"`
	JobTitle  string             `json:"jobTitle"`
	Email     string             `json:"email"`
	City      string             `json:"city"`
	Gender    users_enums.Gender `json:"gender"`
	AvatarURL *string            `json:"avatarUrl"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type UserResponseDTO struct {
	ID        uuid.UUID              `json:"id"`
	Email     string                 `json:"email"`
	Status    users_enums.UserStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}
