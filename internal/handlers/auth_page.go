package handlers

import (
	"errors"
	"net/http"

	"eyestyle/internal/service"

	"github.com/gin-gonic/gin"
)

// loginForm is the template state for the login page.
type loginForm struct {
	Error    string
	Username string
}

// setSessionCookie attaches the signed session token as a browser-session
// cookie (no Max-Age, HttpOnly).
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
}

// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string
// @Router       /login [get]
func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", loginForm{})
}

// loginSubmit handles the posted form. On success it establishes the
// session and redirects to the dashboard; on failure it re-renders the form
// with an inline error and the entered username preserved (the password is
// never echoed). Unknown-user and wrong-password responses are identical.
//
// @Summary      Submit login form
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302  {string}  string  "redirect to /dashboard"
// @Router       /login [post]
func (h *Handler) loginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.services.Login(c.Request.Context(), username, password)
	if err != nil {
		form := loginForm{Username: username}
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			form.Error = msgMissingCredentials
		case errors.Is(err, service.ErrInvalidCredentials):
			form.Error = msgInvalidCredentials
		default:
			// Show a generic database error only; the diagnostic stays in
			// the log.
			if h.log != nil {
				h.log.Errorw("login_storage_failed", "err", err)
			}
			form.Error = "Database error. Please try again later."
		}
		c.HTML(http.StatusOK, "login", form)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/dashboard")
}

// @Summary      Logout
// @Tags         auth
// @Success      302  {string}  string  "redirect to /login"
// @Router       /logout [get]
func (h *Handler) logoutPage(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		if err := h.services.Logout(c.Request.Context(), token); err != nil && h.log != nil {
			h.log.Infow("logout_failed", "err", err)
		}
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// dashboardPage is the post-login landing page; anonymous visitors are sent
// back to the login form.
func (h *Handler) dashboardPage(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	sess, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "dashboard", gin.H{"Username": sess.Username})
}
