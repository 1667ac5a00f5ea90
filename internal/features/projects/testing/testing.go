package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"eagleflow/internal/features/audit_logs"
	projects_dto "eagleflow/internal/features/projects/dto"
	projects_models "eagleflow/internal/features/projects/models"
	users_dto "eagleflow/internal/features/users/dto"
	users_enums "eagleflow/internal/features/users/enums"
	users_middleware "eagleflow/internal/features/users/middleware"
	users_services "eagleflow/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	audit_logs.SetupDependencies()

	return router
}

func CreateTestProject(
	name string,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *projects_models.Project {
	request := projects_dto.CreateProjectRequestDTO{
		Name:     name,
		Location: "Oslo",
		Client:   "Test Client AS",
	}

	w := MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)

	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &projects_models.Project{
		ID:   response.ID,
		Name: response.Name,
	}
}

// InviteMemberToProject creates an invitation and returns it together with
// the raw token needed to accept it.
func InviteMemberToProject(
	project *projects_models.Project,
	email string,
	role users_enums.ProjectRole,
	inviterToken string,
	router *gin.Engine,
) *projects_dto.CreateInvitationResponseDTO {
	request := projects_dto.CreateInvitationRequestDTO{
		Email: email,
		Role:  role,
	}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+inviterToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to invite member to project via API: " + w.Body.String())
	}

	var response projects_dto.CreateInvitationResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

// AddMemberToProject runs the full invite-accept flow so the member ends up
// with an accepted membership row.
func AddMemberToProject(
	project *projects_models.Project,
	member *users_dto.SignInResponseDTO,
	role users_enums.ProjectRole,
	ownerToken string,
	router *gin.Engine,
) {
	invitation := InviteMemberToProject(project, member.Email, role, ownerToken, router)

	request := projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token}
	w := MakeAPIRequest(router, "POST", "/api/v1/invitations/accept", "Bearer "+member.Token, request)

	if w.Code != http.StatusOK {
		panic("Failed to accept invitation via API: " + w.Body.String())
	}
}

func ChangeMemberRole(
	project *projects_models.Project,
	memberUserID uuid.UUID,
	newRole users_enums.ProjectRole,
	changerToken string,
	router *gin.Engine,
) {
	request := projects_dto.ChangeMemberRoleRequestDTO{
		Role: newRole,
	}

	w := MakeAPIRequest(
		router,
		"PUT",
		fmt.Sprintf("/api/v1/projects/memberships/%s/members/%s/role", project.ID.String(), memberUserID.String()),
		"Bearer "+changerToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to change member role via API: " + w.Body.String())
	}
}

func RemoveMemberFromProject(
	project *projects_models.Project,
	memberUserID uuid.UUID,
	removerToken string,
	router *gin.Engine,
) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		fmt.Sprintf("/api/v1/projects/memberships/%s/members/%s", project.ID.String(), memberUserID.String()),
		"Bearer "+removerToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to remove member from project via API: " + w.Body.String())
	}
}

func GetProjectMembers(
	project *projects_models.Project,
	requesterToken string,
	router *gin.Engine,
) *projects_dto.GetMembersResponseDTO {
	w := MakeAPIRequest(
		router,
		"GET",
		"/api/v1/projects/memberships/"+project.ID.String()+"/members",
		"Bearer "+requesterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to get project members via API: " + w.Body.String())
	}

	var response projects_dto.GetMembersResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func UpdateProject(
	project *projects_models.Project,
	updateData *projects_dto.UpdateProjectRequestDTO,
	updaterToken string,
	router *gin.Engine,
) *projects_models.Project {
	w := MakeAPIRequest(
		router,
		"PUT",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+updaterToken,
		updateData,
	)

	if w.Code != http.StatusOK {
		panic("Failed to update project via API: " + w.Body.String())
	}

	var response projects_models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func DeleteProject(project *projects_models.Project, deleterToken string, router *gin.Engine) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+deleterToken,
		nil,
	)

	if w.Code != http.StatusOK {
		panic("Failed to delete project via API: " + w.Body.String())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
