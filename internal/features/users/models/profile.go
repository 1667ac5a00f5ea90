package users_models

import (
	"time"

	users_enums "eagleflow/internal/features/users/enums"

	"github.com/google/uuid"
)

// Profile holds the consultant-facing data of a user. Exactly one
// profile exists per user; it is created at sign-up and lazily on
// sign-in for accounts that predate the profiles table.
type Profile struct {
	UserID              uuid.UUID          `json:"userId"              gorm:"column:user_id;primaryKey"`
	FullName            string             `json:"fullName"            gorm:"column:full_name"`
	BirthDate           time.Time          `json:"birthDate"           gorm:"column:birth_date"`
	Company             string             `json:"company"             gorm:"column:company"`
	JobTitle            string             `json:"jobTitle"            gorm:"column:job_title"`
	Email               string             `json:"email"               gorm:"column:email"`
	City                string             `json:"city"                gorm:"column:city"`
	Gender              users_enums.Gender `json:"gender"              gorm:"column:gender"`
	AvatarURL           *string            `json:"avatarUrl"           gorm:"column:avatar_url"`
	CreatedAt           time.Time          `json:"createdAt"           gorm:"column:created_at"`
	UpdatedAt           time.Time          `json:"updatedAt"           gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
