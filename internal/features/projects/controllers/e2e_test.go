package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "eagleflow/internal/features/projects/dto"
	projects_enums "eagleflow/internal/features/projects/enums"
	projects_models "eagleflow/internal/features/projects/models"
	projects_testing "eagleflow/internal/features/projects/testing"
	users_enums "eagleflow/internal/features/users/enums"
	users_testing "eagleflow/internal/features/users/testing"
	test_utils "eagleflow/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

// Walks a project through its whole life: creation, invitations, role
// changes, ownership transfer and deletion.
func Test_ProjectLifecycle_EndToEnd(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)

	founder := users_testing.CreateTestUser()
	engineer := users_testing.CreateTestUser()
	inspector := users_testing.CreateTestUser()

	// Founder creates the project and is its owner
	project := projects_testing.CreateTestProject("District Heating Upgrade", founder, router)

	var created projects_models.Project
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+founder.Token,
		http.StatusOK,
		&created,
	)
	assert.Equal(t, projects_enums.ProjectStatusActive, created.Status)
	assert.Equal(t, founder.UserID, created.CreatedBy)

	// Engineer joins as member, inspector as viewer
	projects_testing.AddMemberToProject(project, engineer, users_enums.ProjectRoleMember, founder.Token, router)
	projects_testing.AddMemberToProject(project, inspector, users_enums.ProjectRoleViewer, founder.Token, router)

	members := projects_testing.GetProjectMembers(project, inspector.Token, router)
	assert.Len(t, members.Members, 3)
	assert.Equal(t, users_enums.ProjectRoleOwner, members.Members[0].Role)

	// Work progresses
	progress := 40
	updated := projects_testing.UpdateProject(project, &projects_dto.UpdateProjectRequestDTO{
		Progress: &progress,
	}, founder.Token, router)
	assert.Equal(t, 40, updated.Progress)

	// The viewer cannot move the project forward
	moreProgress := 60
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+inspector.Token,
		projects_dto.UpdateProjectRequestDTO{Progress: &moreProgress},
		http.StatusForbidden,
	)

	// Engineer is promoted and takes over the project
	projects_testing.ChangeMemberRole(project, engineer.UserID, users_enums.ProjectRoleAdmin, founder.Token, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/memberships/"+project.ID.String()+"/transfer-ownership",
		"Bearer "+founder.Token,
		projects_dto.TransferOwnershipRequestDTO{NewOwnerEmail: engineer.Email},
		http.StatusOK,
	)

	members = projects_testing.GetProjectMembers(project, engineer.Token, router)
	assert.Equal(t, engineer.UserID, members.Members[0].UserID)
	assert.Equal(t, users_enums.ProjectRoleOwner, members.Members[0].Role)

	// The old owner can no longer delete the project
	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+founder.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "only project owner can delete project")

	// Project is finished and closed out by the new owner
	status := projects_enums.ProjectStatusCompleted
	done := 100
	finished := projects_testing.UpdateProject(project, &projects_dto.UpdateProjectRequestDTO{
		Status:   &status,
		Progress: &done,
	}, engineer.Token, router)
	assert.Equal(t, projects_enums.ProjectStatusCompleted, finished.Status)

	projects_testing.DeleteProject(project, engineer.Token, router)

	var founderProjects projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+founder.Token,
		http.StatusOK,
		&founderProjects,
	)
	assert.Empty(t, founderProjects.Projects)
}
