package projects_controllers

import (
	"net/http"
	"testing"
	"time"

	projects_dto "eagleflow/internal/features/projects/dto"
	projects_enums "eagleflow/internal/features/projects/enums"
	projects_models "eagleflow/internal/features/projects/models"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	projects_testing "eagleflow/internal/features/projects/testing"
	users_enums "eagleflow/internal/features/users/enums"
	users_testing "eagleflow/internal/features/users/testing"
	test_utils "eagleflow/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateInvitation_WhenUserIsOwner_ReturnsInvitationWithToken(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Invite Project", owner, router)

	var response projects_dto.CreateInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		projects_dto.CreateInvitationRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleMember},
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.True(t, len(response.Token) > 3)
	assert.Equal(t, "ef_", response.Token[:3])
	assert.Equal(t, invitee.Email, response.Invitation.Email)
	assert.Equal(t, users_enums.ProjectRoleMember, response.Invitation.Role)
	assert.Equal(t, projects_enums.InvitationStatusPending, response.Invitation.Status)
	assert.Equal(t, owner.UserID, response.Invitation.InvitedBy)
	assert.True(t, response.Invitation.ExpiresAt.After(time.Now().UTC().Add(6*24*time.Hour)))
}

func Test_CreateInvitation_WithOwnerRole_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Owner Invite Project", owner, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		projects_dto.CreateInvitationRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleOwner},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "cannot invite with owner role, transfer ownership instead")
}

func Test_CreateInvitation_WhenPendingInvitationExists_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Duplicate Invite Project", owner, router)
	projects_testing.InviteMemberToProject(project, invitee.Email, users_enums.ProjectRoleMember, owner.Token, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		projects_dto.CreateInvitationRequestDTO{Email: invitee.Email, Role: users_enums.ProjectRoleViewer},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invitation already exists for this email")
}

func Test_CreateInvitation_WhenInviteeIsAlreadyMember_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Existing Member Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		projects_dto.CreateInvitationRequestDTO{Email: member.Email, Role: users_enums.ProjectRoleMember},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "user is already a member of this project")
}

func Test_CreateInvitation_WhenUserIsRegularMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Member Invite Project", owner, router)
	projects_testing.AddMemberToProject(project, member, users_enums.ProjectRoleMember, owner.Token, router)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+member.Token,
		projects_dto.CreateInvitationRequestDTO{Email: "someone@test.com", Role: users_enums.ProjectRoleViewer},
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions to invite members")
}

func Test_ListInvitations_WhenUserIsAdmin_ReturnsInvitations(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("List Invites Project", owner, router)
	projects_testing.InviteMemberToProject(project, invitee.Email, users_enums.ProjectRoleMember, owner.Token, router)

	var response projects_dto.ListInvitationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Invitations, 1)
	assert.Equal(t, invitee.Email, response.Invitations[0].Email)
}

func Test_AcceptInvitation_WithValidToken_AddsMemberWithInvitedRole(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMembershipController(),
		GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Accept Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleAdmin,
		owner.Token,
		router,
	)

	var response projects_dto.AcceptInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, project.ID, response.ProjectID)
	assert.Equal(t, users_enums.ProjectRoleAdmin, response.Role)

	members := projects_testing.GetProjectMembers(project, invitee.Token, router)
	assert.Len(t, members.Members, 2)
}

func Test_AcceptInvitation_WhenEmailDoesNotMatch_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()
	impostor := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Wrong Email Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleMember,
		owner.Token,
		router,
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+impostor.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invitation was sent to a different email")
}

func Test_AcceptInvitation_WhenAlreadyAccepted_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Double Accept Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleMember,
		owner.Token,
		router,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invitation is no longer pending")
}

func Test_AcceptInvitation_WhenExpired_MarksInvitationRejected(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Expired Invite Project", owner, router)

	now := time.Now().UTC()
	token := "ef_expired-" + uuid.New().String()
	invitationRepository := &projects_repositories.InvitationRepository{}
	invitation := &projects_models.ProjectInvitation{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Email:     invitee.Email,
		Role:      users_enums.ProjectRoleMember,
		InvitedBy: owner.UserID,
		Token:     token,
		Status:    projects_enums.InvitationStatusPending,
		CreatedAt: now.Add(-8 * 24 * time.Hour),
		ExpiresAt: now.Add(-24 * time.Hour),
	}
	if err := invitationRepository.CreateInvitation(invitation); err != nil {
		t.Fatal(err)
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invitation has expired")

	stored, err := invitationRepository.GetInvitationByID(invitation.ID)
	assert.NoError(t, err)
	assert.Equal(t, projects_enums.InvitationStatusRejected, stored.Status)
}

func Test_RejectInvitation_WithValidToken_MarksInvitationRejected(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Reject Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleMember,
		owner.Token,
		router,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/reject",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
	)

	var response projects_dto.ListInvitationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Invitations, 1)
	assert.Equal(t, projects_enums.InvitationStatusRejected, response.Invitations[0].Status)
}

func Test_CancelInvitation_WhenInvitationIsPending_DeletesInvitation(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Cancel Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleMember,
		owner.Token,
		router,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/invitations/"+invitation.Invitation.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/accept",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "invitation not found")
}

func Test_CancelInvitation_WhenInvitationIsRejected_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetInvitationController())
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject("Cancel Rejected Project", owner, router)
	invitation := projects_testing.InviteMemberToProject(
		project,
		invitee.Email,
		users_enums.ProjectRoleMember,
		owner.Token,
		router,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/reject",
		"Bearer "+invitee.Token,
		projects_dto.AcceptInvitationRequestDTO{Token: invitation.Token},
		http.StatusOK,
	)

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/invitations/"+invitation.Invitation.ID.String(),
		"Bearer "+owner.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "only pending invitations can be cancelled")
}
