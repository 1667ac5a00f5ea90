package contact

import (
	"fmt"
	"strings"
	"time"

	audit_logs "eagleflow/internal/features/audit_logs"

	"github.com/google/uuid"
)

type ContactService struct {
	contactRepository *ContactRepository
	auditLogService   *audit_logs.AuditLogService
}

func (s *ContactService) CreateContactRequest(request *CreateContactRequestDTO) (*ContactRequest, error) {
	contactRequest := &ContactRequest{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(request.Name),
		Email:     strings.ToLower(strings.TrimSpace(request.Email)),
		Company:   strings.TrimSpace(request.Company),
		Phone:     strings.TrimSpace(request.Phone),
		Message:   strings.TrimSpace(request.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contactRepository.CreateContactRequest(contactRequest); err != nil {
		return nil, fmt.Errorf("failed to create contact request: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Contact request received from %s", contactRequest.Email),
		nil,
		nil,
	)

	return contactRequest, nil
}
