package contact

import (
	"time"

	"github.com/google/uuid"
)

type ContactRequest struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Name      string    `json:"name"      gorm:"column:name"`
	Email     string    `json:"email"     gorm:"column:email"`
	Company   string    `json:"company"   gorm:"column:company"`
	Phone     string    `json:"phone"     gorm:"column:phone"`
	Message   string    `json:"message"   gorm:"column:message"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
