package projects_services

import (
	"eagleflow/internal/cache"
	"eagleflow/internal/features/audit_logs"
	projects_interfaces "eagleflow/internal/features/projects/interfaces"
	projects_models "eagleflow/internal/features/projects/models"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	users_services "eagleflow/internal/features/users/services"
	cache_utils "eagleflow/internal/util/cache"
	"eagleflow/internal/util/logger"
	"eagleflow/internal/util/mailer"
	"eagleflow/internal/util/rate_limit"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}
var invitationRepository = &projects_repositories.InvitationRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	[]projects_interfaces.ProjectDeletionListener{},
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "ef_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	projectService,
}

var invitationService = &InvitationService{
	invitationRepository,
	membershipRepository,
	projectRepository,
	users_services.GetUserService(),
	projectService,
	audit_logs.GetAuditLogService(),
	rate_limit.NewRateLimiter(),
	mailer.GetMailer(),
	logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetInvitationService() *InvitationService {
	return invitationService
}
