package handlers

import (
	"errors"
	"net/http"

	"eyestyle"
	"eyestyle/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Submit contact form
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name     formData  string  true  "Name"
// @Param        email    formData  string  true  "Email"
// @Param        message  formData  string  true  "Message"
// @Success      200  {object}  map[string]interface{}
// @Router       /contact [post]
func (h *Handler) submitContact(c *gin.Context) {
	msg := eyestyle.ContactMessage{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if err := h.services.Submit(c.Request.Context(), msg); err != nil {
		if errors.Is(err, service.ErrIncompleteContactForm) {
			c.JSON(http.StatusOK, apiResult{Success: false, Message: "Please fill in name, email and message."})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDatabase, "contact_submit_failed", err)
		return
	}
	c.JSON(http.StatusOK, apiResult{Success: true, Message: "Thanks for reaching out. We'll get back to you soon."})
}
