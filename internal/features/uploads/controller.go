package uploads

import (
	"net/http"

	users_middleware "eagleflow/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadController struct {
	uploadService *UploadService
}

func (c *UploadController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads/avatar", c.UploadAvatar)
	router.POST("/uploads/projects/:id/image", c.UploadProjectImage)
}

// UploadAvatar
// @Summary Upload profile avatar
// @Description Upload an avatar image for the authenticated user
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpg, jpeg, png, gif, webp; max 5 MB)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /uploads/avatar [post]
func (c *UploadController) UploadAvatar(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	url, err := c.uploadService.UploadAvatar(user, fileHeader)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadProjectImage
// @Summary Upload project image
// @Description Upload an image for a project (owner or admin only)
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "Image file (jpg, jpeg, png, gif, webp; max 5 MB)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /uploads/projects/{id}/image [post]
func (c *UploadController) UploadProjectImage(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	url, err := c.uploadService.UploadProjectImage(projectID, user, fileHeader)
	if err != nil {
		if err.Error() == "insufficient permissions to update project image" {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": url})
}
