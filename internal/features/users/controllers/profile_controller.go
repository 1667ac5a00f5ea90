package users_controllers

import (
	"net/http"

	users_dto "eagleflow/internal/features/users/dto"
	users_middleware "eagleflow/internal/features/users/middleware"
	users_services "eagleflow/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService *users_services.ProfileService
}

func (c *ProfileController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/profile", c.GetProfile)
	router.PUT("/profile", c.UpdateProfile)
}

// GetProfile
// @Summary Get current user's profile
// @Description Get the profile of the currently authenticated user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.ProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := c.profileService.GetProfile(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile
// @Summary Update current user's profile
// @Description Update profile fields of the currently authenticated user
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateProfileRequestDTO true "Profile fields to update"
// @Success 200 {object} users_dto.ProfileResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	profile, err := c.profileService.UpdateProfile(user, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
