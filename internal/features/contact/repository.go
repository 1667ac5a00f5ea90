package contact

import (
	"eagleflow/internal/storage"

	"github.com/google/uuid"
)

type ContactRepository struct{}

func (r *ContactRepository) CreateContactRequest(request *ContactRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}

	return storage.GetDb().Create(request).Error
}
