package projects_controllers

import (
	"fmt"
	"net/http"
	"testing"

	projects_dto "eagleflow/internal/features/projects/dto"
	projects_testing "eagleflow/internal/features/projects/testing"
	users_enums "eagleflow/internal/features/users/enums"
	users_testing "eagleflow/internal/features/users/testing"
	test_utils "eagleflow/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

func Test_GetProjectMembers_WhenUserIsProjectMember_ReturnsMembersOwnerFirst(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Members Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)

	members := projects_testing.GetProjectMembers(project, member.Token, router)

	assert.Len(t, members.Members, 2)
	assert.Equal(t, users_enums.ProjectRoleOwner, members.Members[0].Role)
	assert.Equal(t, owner.UserID, members.Members[0].UserID)
	assert.Equal(t, member.UserID, members.Members[1].UserID)
	assert.Equal(t, "Test User", members.Members[1].FullName)
}

func Test_GetProjectMembers_WhenUserIsNotMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Private Project", owner, router)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/memberships/"+project.ID.String()+"/members",
		"Bearer "+stranger.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to view project members")
}

func Test_ChangeMemberRole_WhenUserIsOwner_UpdatesRole(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Role Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleViewer, owner.Token, router)

	projects_testing.ChangeMemberRole(project, member.UserID, users_enums.ProjectRoleAdmin, owner.Token, router)

	members := projects_testing.GetProjectMembers(project, owner.Token, router)
	for _, m := range members.Members {
		if m.UserID == member.UserID {
			assert.Equal(t, users_enums.ProjectRoleAdmin, m.Role)
		}
	}
}

func Test_ChangeMemberRole_WhenTargetIsOwner_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	projectAdmin := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Owner Guard Project", owner, router)
	projects_testing.AddMemberToProject(project, projectAdmin, users_enums.ProjectRoleAdmin, owner.Token, router)

	resp := test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/memberships/%s/members/%s/role", project.ID.String(), owner.UserID.String()),
		"Bearer "+projectAdmin.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "cannot modify project owner")
}

func Test_ChangeMemberRole_WhenChangingOwnRole_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	projectAdmin := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Self Role Project", owner, router)
	projects_testing.AddMemberToProject(project, projectAdmin, users_enums.ProjectRoleAdmin, owner.Token, router)

	resp := test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf(
			"/api/v1/projects/memberships/%s/members/%s/role",
			project.ID.String(),
			projectAdmin.UserID.String(),
		),
		"Bearer "+projectAdmin.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleViewer},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot change your own role")
}

func Test_ChangeMemberRole_WhenGrantingOwnerRole_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Owner Grant Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)

	resp := test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/memberships/%s/members/%s/role", project.ID.String(), member.UserID.String()),
		"Bearer "+owner.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleOwner},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot grant owner role, transfer ownership instead")
}

func Test_ChangeMemberRole_WhenUserIsRegularMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	otherMember := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Member Perms Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)
	projects_testing.AddMemberToProject(project, otherMember, users_enums.ProjectRoleMember, owner.Token, router)

	resp := test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf(
			"/api/v1/projects/memberships/%s/members/%s/role",
			project.ID.String(),
			otherMember.UserID.String(),
		),
		"Bearer "+member.Token,
		projects_dto.ChangeMemberRoleRequestDTO{Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to manage members")
}

func Test_RemoveMember_WhenTargetIsOwner_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	projectAdmin := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Remove Owner Project", owner, router)
	projects_testing.AddMemberToProject(project, projectAdmin, users_enums.ProjectRoleAdmin, owner.Token, router)

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/projects/memberships/%s/members/%s", project.ID.String(), owner.UserID.String()),
		"Bearer "+projectAdmin.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "cannot modify project owner")
}

func Test_RemoveMember_WhenUserIsAdmin_RemovesMember(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	projectAdmin := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Remove Member Project", owner, router)
	projects_testing.AddMemberToProject(project, projectAdmin, users_enums.ProjectRoleAdmin, owner.Token, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)

	projects_testing.RemoveMemberFromProject(project, member.UserID, projectAdmin.Token, router)

	members := projects_testing.GetProjectMembers(project, owner.Token, router)
	assert.Len(t, members.Members, 2)
	for _, m := range members.Members {
		assert.NotEqual(t, member.UserID, m.UserID)
	}
}

func Test_TransferOwnership_WhenUserIsOwner_SwapsRoles(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	newOwner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Transfer Project", owner, router)
	projects_testing.AddMemberToProject(project, newOwner, users_enums.ProjectRoleMember, owner.Token, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/memberships/"+project.ID.String()+"/transfer-ownership",
		"Bearer "+owner.Token,
		projects_dto.TransferOwnershipRequestDTO{NewOwnerEmail: newOwner.Email},
		http.StatusOK,
	)

	members := projects_testing.GetProjectMembers(project, owner.Token, router)
	assert.Equal(t, newOwner.UserID, members.Members[0].UserID)
	assert.Equal(t, users_enums.ProjectRoleOwner, members.Members[0].Role)

	for _, m := range members.Members {
		if m.UserID == owner.UserID {
			assert.Equal(t, users_enums.ProjectRoleAdmin, m.Role)
		}
	}
}

func Test_TransferOwnership_WhenUserIsAdmin_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	projectAdmin := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Admin Transfer Project", owner, router)
	projects_testing.AddMemberToProject(project, projectAdmin, users_enums.ProjectRoleAdmin, owner.Token, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/memberships/"+project.ID.String()+"/transfer-ownership",
		"Bearer "+projectAdmin.Token,
		projects_dto.TransferOwnershipRequestDTO{NewOwnerEmail: projectAdmin.Email},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "only project owner can transfer ownership")
}

func Test_TransferOwnership_WhenNewOwnerIsNotMember_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Outsider Transfer Project", owner, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/memberships/"+project.ID.String()+"/transfer-ownership",
		"Bearer "+owner.Token,
		projects_dto.TransferOwnershipRequestDTO{NewOwnerEmail: outsider.Email},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "new owner must be a project member")
}
