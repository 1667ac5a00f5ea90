package projects_services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	audit_logs "eagleflow/internal/features/audit_logs"
	projects_dto "eagleflow/internal/features/projects/dto"
	projects_enums "eagleflow/internal/features/projects/enums"
	projects_models "eagleflow/internal/features/projects/models"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	users_models "eagleflow/internal/features/users/models"
	users_services "eagleflow/internal/features/users/services"
	"eagleflow/internal/util/mailer"
	"eagleflow/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	invitationTokenPrefix = "ef_"
	invitationLifetime    = 7 * 24 * time.Hour

	// Per-project invitation throttle
	invitationsPerMinute = 10
	invitationsBurst     = 20

	expirySweepInterval = time.Hour
)

type InvitationService struct {
	invitationRepository *projects_repositories.InvitationRepository
	membershipRepository *projects_repositories.MembershipRepository
	projectRepository    *projects_repositories.ProjectRepository
	userService          *users_services.UserService
	projectService       *ProjectService
	auditLogService      *audit_logs.AuditLogService
	rateLimiter          *rate_limit.RateLimiter
	mailer               *mailer.Mailer
	logger               *slog.Logger
}

func (s *InvitationService) CreateInvitation(
	projectID uuid.UUID,
	request *projects_dto.CreateInvitationRequestDTO,
	invitedBy *users_models.User,
) (*projects_dto.CreateInvitationResponseDTO, error) {
	canManage, err := s.projectService.CanUserManageProject(projectID, invitedBy)
	if err != nil {
		return nil, err
	}

	if !canManage {
		return nil, errors.New("insufficient permissions to invite members")
	}

	if !request.Role.IsInvitable() {
		return nil, errors.New("cannot invite with owner role, transfer ownership instead")
	}

	rateLimitResult, err := s.rateLimiter.CheckRateLimit(projectID, invitationsPerMinute, invitationsBurst)
	if err != nil {
		s.logger.Error("invitation rate limit check failed", "error", err, "projectId", projectID)
	} else if !rateLimitResult.Allowed {
		return nil, errors.New("too many invitations, try again later")
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	existingUser, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		existingMember, _ := s.membershipRepository.GetMemberByUserAndProject(existingUser.ID, projectID)
		if existingMember != nil {
			return nil, errors.New("user is already a member of this project")
		}
	}

	existingInvitation, err := s.invitationRepository.GetPendingInvitationByProjectAndEmail(projectID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invitation: %w", err)
	}

	if existingInvitation != nil {
		return nil, errors.New("invitation already exists for this email")
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	now := time.Now().UTC()
	invitation := &projects_models.ProjectInvitation{
		ID:        uuid.New(),
		ProjectID: projectID,
		Email:     email,
		Role:      request.Role,
		InvitedBy: invitedBy.ID,
		Token:     token,
		Status:    projects_enums.InvitationStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(invitationLifetime),
	}

	if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.sendInvitationEmail(invitation)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation created for %s as %s", email, request.Role),
		&invitedBy.ID,
		&projectID,
	)

	return &projects_dto.CreateInvitationResponseDTO{
		Invitation: *toInvitationDTO(invitation),
		Token:      token,
	}, nil
}

func (s *InvitationService) GetInvitations(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ListInvitationsResponseDTO, error) {
	canManage, err := s.projectService.CanUserManageProject(projectID, user)
	if err != nil {
		return nil, err
	}

	if !canManage {
		return nil, errors.New("insufficient permissions to view invitations")
	}

	invitations, err := s.invitationRepository.GetProjectInvitations(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations: %w", err)
	}

	invitationsList := make([]projects_dto.InvitationResponseDTO, len(invitations))
	for i, invitation := range invitations {
		invitationsList[i] = *toInvitationDTO(invitation)
	}

	return &projects_dto.ListInvitationsResponseDTO{
		Invitations: invitationsList,
	}, nil
}

func (s *InvitationService) CancelInvitation(invitationID uuid.UUID, user *users_models.User) error {
	invitation, err := s.invitationRepository.GetInvitationByID(invitationID)
	if err != nil {
		return errors.New("invitation not found")
	}

	canManage, err := s.projectService.CanUserManageProject(invitation.ProjectID, user)
	if err != nil {
		return err
	}

	if !canManage {
		return errors.New("insufficient permissions to cancel invitations")
	}

	if invitation.Status != projects_enums.InvitationStatusPending {
		return errors.New("only pending invitations can be cancelled")
	}

	if err := s.invitationRepository.DeleteInvitation(invitationID); err != nil {
		return fmt.Errorf("failed to cancel invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation cancelled for %s", invitation.Email),
		&user.ID,
		&invitation.ProjectID,
	)

	return nil
}

func (s *InvitationService) AcceptInvitation(
	token string,
	user *users_models.User,
) (*projects_dto.AcceptInvitationResponseDTO, error) {
	invitation, err := s.validateInvitationForResponse(token, user)
	if err != nil {
		return nil, err
	}

	existingMember, _ := s.membershipRepository.GetMemberByUserAndProject(user.ID, invitation.ProjectID)
	if existingMember != nil {
		return nil, errors.New("user is already a member of this project")
	}

	member := &projects_models.ProjectMember{
		ID:               uuid.New(),
		ProjectID:        invitation.ProjectID,
		UserID:           user.ID,
		Role:             invitation.Role,
		InvitationStatus: projects_enums.InvitationStatusAccepted,
		InvitedBy:        &invitation.InvitedBy,
		InvitationEmail:  &invitation.Email,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.invitationRepository.AcceptInvitationAndCreateMember(invitation, member); err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation accepted, joined as %s", invitation.Role),
		&user.ID,
		&invitation.ProjectID,
	)

	return &projects_dto.AcceptInvitationResponseDTO{
		ProjectID: invitation.ProjectID,
		Role:      invitation.Role,
	}, nil
}

func (s *InvitationService) RejectInvitation(token string, user *users_models.User) error {
	invitation, err := s.validateInvitationForResponse(token, user)
	if err != nil {
		return err
	}

	if err := s.invitationRepository.UpdateInvitationStatus(
		invitation.ID,
		projects_enums.InvitationStatusRejected,
	); err != nil {
		return fmt.Errorf("failed to reject invitation: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		"Invitation rejected",
		&user.ID,
		&invitation.ProjectID,
	)

	return nil
}

// StartExpirySweep marks expired pending invitations rejected once per hour.
func (s *InvitationService) StartExpirySweep() {
	go func() {
		ticker := time.NewTicker(expirySweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			s.RunExpirySweep()
		}
	}()
}

func (s *InvitationService) RunExpirySweep() {
	affected, err := s.invitationRepository.MarkExpiredInvitationsRejected(time.Now().UTC())
	if err != nil {
		s.logger.Error("invitation expiry sweep failed", "error", err)
		return
	}

	if affected > 0 {
		s.logger.Info("expired invitations closed", "count", affected)
	}
}

func (s *InvitationService) validateInvitationForResponse(
	token string,
	user *users_models.User,
) (*projects_models.ProjectInvitation, error) {
	invitation, err := s.invitationRepository.GetInvitationByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation == nil {
		return nil, errors.New("invitation not found")
	}

	if invitation.Status != projects_enums.InvitationStatusPending {
		return nil, errors.New("invitation is no longer pending")
	}

	if invitation.IsExpired(time.Now().UTC()) {
		// Close it out so it cannot be retried
		if err := s.invitationRepository.UpdateInvitationStatus(
			invitation.ID,
			projects_enums.InvitationStatusRejected,
		); err != nil {
			s.logger.Error("failed to mark expired invitation rejected", "error", err)
		}

		return nil, errors.New("invitation has expired")
	}

	if !strings.EqualFold(invitation.Email, user.Email) {
		return nil, errors.New("invitation was sent to a different email")
	}

	return invitation, nil
}

func (s *InvitationService) sendInvitationEmail(invitation *projects_models.ProjectInvitation) {
	if !s.mailer.IsConfigured() {
		return
	}

	project, err := s.projectRepository.GetProjectByID(invitation.ProjectID)
	if err != nil {
		s.logger.Error("failed to load project for invitation email", "error", err)
		return
	}

	subject := fmt.Sprintf("You have been invited to %s", project.Name)
	body := fmt.Sprintf(
		"You have been invited to join the project %q as %s.\n\n"+
			"Use this invitation token to accept: %s\n\n"+
			"The invitation expires on %s.",
		project.Name,
		invitation.Role,
		invitation.Token,
		invitation.ExpiresAt.Format(time.RFC1123),
	)

	if err := s.mailer.Send(invitation.Email, subject, body); err != nil {
		s.logger.Error("failed to send invitation email", "error", err, "email", invitation.Email)
	}
}

func generateInvitationToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}

	return invitationTokenPrefix + base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}

func toInvitationDTO(invitation *projects_models.ProjectInvitation) *projects_dto.InvitationResponseDTO {
	return &projects_dto.InvitationResponseDTO{
		ID:        invitation.ID,
		ProjectID: invitation.ProjectID,
		Email:     invitation.Email,
		Role:      invitation.Role,
		InvitedBy: invitation.InvitedBy,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
		ExpiresAt: invitation.ExpiresAt,
	}
}
