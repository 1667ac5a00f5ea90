package projects_models

import (
	"time"

	projects_enums "eagleflow/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                   `json:"id"          gorm:"column:id"`
	Name        string                      `json:"name"        gorm:"column:name"`
	Description string                      `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus `json:"status"      gorm:"column:status"`
	Progress    int                         `json:"progress"    gorm:"column:progress"`

	// Site and contract details
	Size                string `json:"size"                gorm:"column:size"`
	Location            string `json:"location"            gorm:"column:location"`
	MainContractor      string `json:"mainContractor"      gorm:"column:main_contractor"`
	TechnicalContractor string `json:"technicalContractor" gorm:"column:technical_contractor"`
	Client              string `json:"client"              gorm:"column:client"`
	Address             string `json:"address"             gorm:"column:address"`

	ImageURL  *string   `json:"imageUrl"  gorm:"column:image_url"`
	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"` // Used for caching non-existent projects
}

func (Project) TableName() string {
	return "projects"
}
