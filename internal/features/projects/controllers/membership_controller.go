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

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects/memberships/:id")

	projectRoutes.GET("/members", c.ListMembers)
	projectRoutes.PUT("/members/:userId/role", c.ChangeMemberRole)
	projectRoutes.DELETE("/members/:userId", c.RemoveMember)
	projectRoutes.POST("/transfer-ownership", c.TransferOwnership)
}

// ListMembers
// @Summary List project members
// @Description Get all project members with their profiles, owner first
// @Tags project-membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
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

	response, err := c.membershipService.GetMembers(projectID, user)
	if err != nil {
		if err.Error() == "insufficient permissions to view project members" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeMemberRole
// @Summary Change member role
// @Description Change the role of an existing project member (owner row is immutable)
// @Tags project-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Param request body projects_dto.ChangeMemberRoleRequestDTO true "Role change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{id}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, memberUserID, ok := parseProjectAndUserIDs(ctx)
	if !ok {
		return
	}

	var request projects_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.ChangeMemberRole(projectID, memberUserID, &request, user); err != nil {
		writeMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated successfully"})
}

// RemoveMember
// @Summary Remove member from project
// @Description Remove a member from the project (owner cannot be removed)
// @Tags project-membership
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, memberUserID, ok := parseProjectAndUserIDs(ctx)
	if !ok {
		return
	}

	if err := c.membershipService.RemoveMember(projectID, memberUserID, user); err != nil {
		writeMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// TransferOwnership
// @Summary Transfer project ownership
// @Description Transfer project ownership to another member (owner only)
// @Tags project-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.TransferOwnershipRequestDTO true "Ownership transfer data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{id}/transfer-ownership [post]
func (c *MembershipController) TransferOwnership(ctx *gin.Context) {
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

	var request projects_dto.TransferOwnershipRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.TransferOwnership(projectID, &request, user); err != nil {
		writeMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ownership transferred successfully"})
}

func parseProjectAndUserIDs(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return projectID, memberUserID, true
}

func writeMembershipError(ctx *gin.Context, err error) {
	message := err.Error()

	if strings.HasPrefix(message, "insufficient permissions") ||
		strings.HasPrefix(message, "only project owner") ||
		message == "cannot modify project owner" {
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
