package contact

import (
	audit_logs "eagleflow/internal/features/audit_logs"
)

var contactRepository = &ContactRepository{}
var contactService = &ContactService{
	contactRepository: contactRepository,
	auditLogService:   audit_logs.GetAuditLogService(),
}
var contactController = &ContactController{
	contactService: contactService,
}

func GetContactService() *ContactService {
	return contactService
}

func GetContactController() *ContactController {
	return contactController
}
