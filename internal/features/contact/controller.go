package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contactService *ContactService
}

// RegisterRoutes mounts the public contact endpoint, no auth required.
func (c *ContactController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", c.CreateContactRequest)
}

// CreateContactRequest
// @Summary Submit a contact request
// @Description Store a contact request from the public site
// @Tags contact
// @Accept json
// @Produce json
// @Param request body contact.CreateContactRequestDTO true "Contact request data"
// @Success 200 {object} contact.ContactRequest
// @Failure 400 {object} map[string]string
// @Router /contact [post]
func (c *ContactController) CreateContactRequest(ctx *gin.Context) {
	var request CreateContactRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	contactRequest, err := c.contactService.CreateContactRequest(&request)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact request"})
		return
	}

	ctx.JSON(http.StatusOK, contactRequest)
}
