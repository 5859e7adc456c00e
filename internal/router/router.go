package router

import (
	"github.com/gin-gonic/gin"

	"gemtrove/internal/handler"
	"gemtrove/internal/middleware"
	"gemtrove/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	gemH *handler.GemHandler,
	subH *handler.SubmissionHandler,
	mediaH *handler.MediaHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Public directory routes
	v1.GET("/gems", gemH.List)
	v1.GET("/gems/:slug", gemH.GetBySlug)
	v1.POST("/submissions", subH.Create)
	v1.GET("/images/:filename", mediaH.Proxy)

	// Protected routes - require valid admin JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/gems", gemH.Create)
	protected.PUT("/gems/:id", gemH.Update)
	protected.DELETE("/gems/:id", gemH.Delete)

	protected.GET("/submissions", subH.ListPending)
	protected.POST("/submissions/:id/approve", subH.Approve)
	protected.POST("/submissions/:id/reject", subH.Reject)

	protected.POST("/images", mediaH.Upload)
	protected.POST("/images/inspect", mediaH.Inspect)
	protected.DELETE("/images/:id", mediaH.Delete)

	return r
}
