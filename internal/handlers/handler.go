package handlers

import (
	"eyestyle/internal/logger"
	"eyestyle/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Name of the cookie carrying the signed session token.
const sessionCookieName = "eyestyle_session"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplates)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Server-rendered auth pages
	router.GET("/login", h.loginPage)
	router.POST("/login", h.loginSubmit)
	router.GET("/logout", h.logoutPage)
	router.GET("/dashboard", h.dashboardPage)

	// Storefront API: one endpoint dispatched by the "action" query
	// parameter, form-encoded requests, JSON responses. The session is
	// resolved from the cookie on every call; per-action handlers decide
	// whether a user is required.
	api := router.Group("/api", h.loadSession)
	{
		api.GET("", h.dispatchAction)
		api.POST("", h.dispatchAction)
	}

	// Standalone contact-form handler
	router.POST("/contact", h.submitContact)

	// Cart badge push (HTTP upgrade) — same port
	router.GET("/ws", h.loadSession, h.wsCartBadge)

	return router
}
