package projects_controllers

import (
	projects_services "eagleflow/internal/features/projects/services"
)

var projectController = &ProjectController{
	projectService: projects_services.GetProjectService(),
}

var membershipController = &MembershipController{
	membershipService: projects_services.GetMembershipService(),
}

var invitationController = &InvitationController{
	invitationService: projects_services.GetInvitationService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}

func GetInvitationController() *InvitationController {
	return invitationController
}
