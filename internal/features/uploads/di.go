package uploads

import (
	audit_logs "eagleflow/internal/features/audit_logs"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	projects_services "eagleflow/internal/features/projects/services"
	users_repositories "eagleflow/internal/features/users/repositories"
	"eagleflow/internal/util/logger"
)

var uploadService = &UploadService{
	profileRepository: &users_repositories.ProfileRepository{},
	projectRepository: &projects_repositories.ProjectRepository{},
	projectService:    projects_services.GetProjectService(),
	auditLogService:   audit_logs.GetAuditLogService(),
	logger:            logger.GetLogger(),
}

var uploadController = &UploadController{
	uploadService: uploadService,
}

func GetUploadService() *UploadService {
	return uploadService
}

func GetUploadController() *UploadController {
	return uploadController
}

// SetupDependencies hooks uploads into project deletion so stored images
// are cleaned up with their project.
func SetupDependencies() {
	projects_services.GetProjectService().AddProjectDeletionListener(uploadService)
}
