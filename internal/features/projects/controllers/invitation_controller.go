package projects_controllers

import (
	"net/http"
	"strings"

	projects_dto "eagleflow/internal/features/projects/dto"
	projects_services "eagleflow/internal/features/projects/services"
	users_middleware "eagleflow/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationController struct {
	invitationService *projects_services.InvitationService
}

func (c *InvitationController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/projects/:id/invitations", c.CreateInvitation)
	router.GET("/projects/:id/invitations", c.ListInvitations)
	router.DELETE("/invitations/:invitationId", c.CancelInvitation)
	router.POST("/invitations/accept", c.AcceptInvitation)
	router.POST("/invitations/reject", c.RejectInvitation)
}

// CreateInvitation
// @Summary Invite a user to a project
// @Description Create a tokenized invitation and email it to the invitee (owner/admin only)
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.CreateInvitationRequestDTO true "Invitation data"
// @Success 200 {object} projects_dto.CreateInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/{id}/invitations [post]
func (c *InvitationController) CreateInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectIDStr := ctx.Param("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.CreateInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.CreateInvitation(projectID, &request, user)
	if err != nil {
		writeInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListInvitations
// @Summary List project invitations
// @Description Get all invitations of a project, newest first (owner/admin only)
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListInvitationsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/invitations [get]
func (c *InvitationController) ListInvitations(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectIDStr := ctx.Param("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.invitationService.GetInvitations(projectID, user)
	if err != nil {
		writeInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CancelInvitation
// @Summary Cancel a pending invitation
// @Description Delete a pending invitation (owner/admin only)
// @Tags invitations
// @Security BearerAuth
// @Param invitationId path string true "Invitation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /invitations/{invitationId} [delete]
func (c *InvitationController) CancelInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invitationIDStr := ctx.Param("invitationId")
	invitationID, err := uuid.Parse(invitationIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	if err := c.invitationService.CancelInvitation(invitationID, user); err != nil {
		writeInvitationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled successfully"})
}

// AcceptInvitation
// @Summary Accept an invitation
// @Description Accept an invitation by token, the caller joins the project with the invited role
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.AcceptInvitationRequestDTO true "Invitation token"
// @Success 200 {object} projects_dto.AcceptInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /invitations/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request projects_dto.AcceptInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.AcceptInvitation(request.Token, user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RejectInvitation
// @Summary Reject an invitation
// @Description Reject an invitation by token
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.AcceptInvitationRequestDTO true "Invitation token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /invitations/reject [post]
func (c *InvitationController) RejectInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request projects_dto.AcceptInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.invitationService.RejectInvitation(request.Token, user); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
}

func writeInvitationError(ctx *gin.Context, err error) {
	message := err.Error()

	if strings.HasPrefix(message, "insufficient permissions") {
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
		return
	}

	if message == "too many invitations, try again later" {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
