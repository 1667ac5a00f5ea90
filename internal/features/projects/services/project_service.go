package projects_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "eagleflow/internal/features/audit_logs"
	projects_dto "eagleflow/internal/features/projects/dto"
	projects_enums "eagleflow/internal/features/projects/enums"
	projects_interfaces "eagleflow/internal/features/projects/interfaces"
	projects_models "eagleflow/internal/features/projects/models"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	users_enums "eagleflow/internal/features/users/enums"
	users_models "eagleflow/internal/features/users/models"
	users_services "eagleflow/internal/features/users/services"
	cache_utils "eagleflow/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	userService              *users_services.UserService
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	now := time.Now().UTC()

	project := &projects_models.Project{
		ID:                  uuid.New(),
		Name:                request.Name,
		Description:         request.Description,
		Status:              projects_enums.ProjectStatusActive,
		Progress:            0,
		Size:                request.Size,
		Location:            request.Location,
		MainContractor:      request.MainContractor,
		TechnicalContractor: request.TechnicalContractor,
		Client:              request.Client,
		Address:             request.Address,
		CreatedBy:           creator.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	owner := &projects_models.ProjectMember{
		ID:               uuid.New(),
		UserID:           creator.ID,
		Role:             users_enums.ProjectRoleOwner,
		InvitationStatus: projects_enums.InvitationStatusAccepted,
		CreatedAt:        now,
	}

	if err := s.projectRepository.CreateProjectWithOwner(project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&project.ID,
	)

	ownerRole := users_enums.ProjectRoleOwner
	return s.toResponseDTO(project, &ownerRole), nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*projects_models.Project, error) {
	isCanAccess, _, err := s.CanUserAccessProject(projectID, user)

	if err != nil {
		return nil, err
	}
	if !isCanAccess {
		return nil, errors.New("insufficient permissions to view project")
	}

	return s.GetProjectWithCache(projectID)
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.membershipRepository.GetProjectsWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_models.Project, error) {
	canManage, err := s.CanUserManageProject(projectID, user)

	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, errors.New("insufficient permissions to update project")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.applyProjectUpdate(project, request); err != nil {
		return nil, err
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return project, nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	userProjectRole, err := s.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get user role: %w", err)
	}

	if userProjectRole == nil || *userProjectRole != users_enums.ProjectRoleOwner {
		return errors.New("only project owner can delete project")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if err := s.projectRepository.DeleteProjectCascade(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *ProjectService) GetUserProjectRole(projectID uuid.UUID, userID uuid.UUID) (*users_enums.ProjectRole, error) {
	return s.membershipRepository.GetUserProjectRole(projectID, userID)
}

// InvalidateProjectCache drops the cached project after out-of-band updates,
// e.g. image uploads that write through the repository directly.
func (s *ProjectService) InvalidateProjectCache(projectID uuid.UUID) {
	s.projectCacheUtil.Invalidate(projectID.String())
}

func (s *ProjectService) CanUserAccessProject(
	projectID uuid.UUID,
	user *users_models.User,
) (bool, *users_enums.ProjectRole, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, nil, nil
	}

	return role != nil, role, nil
}

func (s *ProjectService) CanUserManageProject(projectID uuid.UUID, user *users_models.User) (bool, error) {
	role, err := s.membershipRepository.GetUserProjectRole(projectID, user.ID)
	if err != nil {
		return false, err
	}

	if role == nil {
		return false, nil
	}

	return role.CanManageMembers(), nil
}

func (s *ProjectService) GetProjectAuditLogs(
	projectID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	isCanAccess, _, err := s.CanUserAccessProject(projectID, user)
	if err != nil {
		return nil, err
	}
	if !isCanAccess {
		return nil, errors.New("insufficient permissions to view project audit logs")
	}

	return s.auditLogService.GetProjectAuditLogs(projectID, request)
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, errors.New("project not found")
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})

	if err != nil {
		// Cache the invalid project to prevent future DB hits
		invalidCachedProject := &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		}
		s.projectCacheUtil.Set(projectIDStr, invalidCachedProject)
		return nil, errors.New("project not found")
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	// Cache the valid project
	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

func (s *ProjectService) applyProjectUpdate(
	project *projects_models.Project,
	request *projects_dto.UpdateProjectRequestDTO,
) error {
	if request.Name != nil {
		project.Name = *request.Name
	}

	if request.Description != nil {
		project.Description = *request.Description
	}

	if request.Size != nil {
		project.Size = *request.Size
	}

	if request.Location != nil {
		project.Location = *request.Location
	}

	if request.MainContractor != nil {
		project.MainContractor = *request.MainContractor
	}

	if request.TechnicalContractor != nil {
		project.TechnicalContractor = *request.TechnicalContractor
	}

	if request.Client != nil {
		project.Client = *request.Client
	}

	if request.Address != nil {
		project.Address = *request.Address
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return errors.New("invalid project status")
		}

		project.Status = *request.Status
	}

	if request.Progress != nil {
		if *request.Progress < 0 || *request.Progress > 100 {
			return errors.New("progress must be between 0 and 100")
		}

		project.Progress = *request.Progress
	}

	return nil
}

func (s *ProjectService) toResponseDTO(
	project *projects_models.Project,
	userRole *users_enums.ProjectRole,
) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:                  project.ID,
		Name:                project.Name,
		Description:         project.Description,
		Status:              project.Status,
		Progress:            project.Progress,
		Size:                project.Size,
		Location:            project.Location,
		MainContractor:      project.MainContractor,
		TechnicalContractor: project.TechnicalContractor,
		Client:              project.Client,
		Address:             project.Address,
		ImageURL:            project.ImageURL,
		CreatedBy:           project.CreatedBy,
		CreatedAt:           project.CreatedAt,
		UpdatedAt:           project.UpdatedAt,
		UserRole:            userRole,
	}
}
