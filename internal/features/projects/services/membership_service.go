package projects_services

import (
	"errors"
	"fmt"

	audit_logs "eagleflow/internal/features/audit_logs"
	projects_dto "eagleflow/internal/features/projects/dto"
	projects_models "eagleflow/internal/features/projects/models"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	users_enums "eagleflow/internal/features/users/enums"
	users_models "eagleflow/internal/features/users/models"
	users_services "eagleflow/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectRepository    *projects_repositories.ProjectRepository
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	projectService       *ProjectService
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	canAccess, _, err := s.projectService.CanUserAccessProject(projectID, user)

	if err != nil {
		return nil, err
	}
	if !canAccess {
		return nil, errors.New("insufficient permissions to view project members")
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	membersList := make([]projects_dto.ProjectMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &projects_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	canManage, err := s.projectService.CanUserManageProject(projectID, changedBy)
	if err != nil {
		return err
	}

	if !canManage {
		return errors.New("insufficient permissions to manage members")
	}

	if memberUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	existingMember, err := s.membershipRepository.GetMemberByUserAndProject(memberUserID, projectID)
	if err != nil {
		return errors.New("user is not a member of this project")
	}

	if err := s.validateMemberMutation(existingMember, &request.Role); err != nil {
		return err
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, projectID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			targetUser.Email,
			existingMember.Role,
			request.Role,
		),
		&changedBy.ID,
		&projectID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	canManage, err := s.projectService.CanUserManageProject(projectID, removedBy)
	if err != nil {
		return err
	}

	if !canManage {
		return errors.New("insufficient permissions to remove members")
	}

	existingMember, err := s.membershipRepository.GetMemberByUserAndProject(memberUserID, projectID)
	if err != nil {
		return errors.New("user is not a member of this project")
	}

	if err := s.validateMemberMutation(existingMember, nil); err != nil {
		return err
	}

	targetUser, err := s.userService.GetUserByID(memberUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, projectID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from project: %s", targetUser.Email),
		&removedBy.ID,
		&projectID,
	)

	return nil
}

func (s *MembershipService) TransferOwnership(
	projectID uuid.UUID,
	request *projects_dto.TransferOwnershipRequestDTO,
	user *users_models.User,
) error {
	currentRole, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get current user role: %w", err)
	}

	if currentRole == nil || *currentRole != users_enums.ProjectRoleOwner {
		return errors.New("only project owner can transfer ownership")
	}

	newOwner, err := s.userService.GetUserByEmail(request.NewOwnerEmail)
	if err != nil {
		return errors.New("new owner not found")
	}

	if newOwner == nil {
		return errors.New("new owner not found")
	}

	_, err = s.membershipRepository.GetMemberByUserAndProject(newOwner.ID, projectID)
	if err != nil {
		return errors.New("new owner must be a project member")
	}

	currentOwner, err := s.membershipRepository.GetProjectOwner(projectID)
	if err != nil {
		return fmt.Errorf("failed to find current project owner: %w", err)
	}

	if currentOwner == nil {
		return errors.New("no current project owner found")
	}

	if err := s.membershipRepository.UpdateMemberRole(newOwner.ID, projectID, users_enums.ProjectRoleOwner); err != nil {
		return fmt.Errorf("failed to update new owner role: %w", err)
	}

	if err := s.membershipRepository.UpdateMemberRole(currentOwner.UserID, projectID, users_enums.ProjectRoleAdmin); err != nil {
		return fmt.Errorf("failed to update previous owner role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project ownership transferred to: %s", newOwner.Email),
		&user.ID,
		&projectID,
	)

	return nil
}

// validateMemberMutation is the single place that protects the owner row.
// A nil newRole means removal. Ownership only moves through TransferOwnership.
func (s *MembershipService) validateMemberMutation(
	existingMember *projects_models.ProjectMember,
	newRole *users_enums.ProjectRole,
) error {
	if existingMember.Role == users_enums.ProjectRoleOwner {
		return errors.New("cannot modify project owner")
	}

	if newRole != nil {
		if !newRole.IsValid() {
			return errors.New("invalid project role")
		}

		if *newRole == users_enums.ProjectRoleOwner {
			return errors.New("cannot grant owner role, transfer ownership instead")
		}
	}

	return nil
}
