package routes

import (
	"time"

	"kpi-dashboard/internal/adapters/http/handlers"
	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/config"
	"kpi-dashboard/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log logrus.FieldLogger, storage fiber.Storage) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	goalRepo := repositories.NewGoalRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT, log.WithField("service", "auth"))
	userService := services.NewUserService(userRepo, teamRepo, branchRepo, refreshTokenRepo, log.WithField("service", "user"))
	branchService := services.NewBranchService(branchRepo, teamRepo, log.WithField("service", "branch"))
	teamService := services.NewTeamService(teamRepo, userRepo, branchRepo, log.WithField("service", "team"))
	goalService := services.NewGoalService(goalRepo, userRepo, log.WithField("service", "goal"))
	reviewService := services.NewReviewService(reviewRepo, userRepo, teamRepo, log.WithField("service", "review"))
	performanceService := services.NewPerformanceService(reviewRepo, userRepo, teamRepo)
	dashboardService := services.NewDashboardService(userRepo, teamRepo, branchRepo, goalRepo, reviewRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(authService, cfg, log)
	userHandler := handlers.NewUserHandler(userService, log)
	branchHandler := handlers.NewBranchHandler(branchService, log)
	teamHandler := handlers.NewTeamHandler(teamService, log)
	goalHandler := handlers.NewGoalHandler(goalService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)
	performanceHandler := handlers.NewPerformanceHandler(performanceService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := middleware.AuthMiddleware(cfg, userRepo)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	setupAuthRoutes(apiV1.Group("/auth", middleware.NoStore()), authHandler, requireAuth, storage)
	setupUserRoutes(apiV1.Group("/users", requireAuth), userHandler)
	setupBranchRoutes(apiV1.Group("/branches", requireAuth), branchHandler)
	setupTeamRoutes(apiV1.Group("/teams", requireAuth), teamHandler)
	setupGoalRoutes(apiV1.Group("/goals", requireAuth), goalHandler)
	setupReviewRoutes(apiV1.Group("/performance-reviews", requireAuth), reviewHandler)
	setupPerformanceRoutes(apiV1.Group("/performance", requireAuth), performanceHandler)
	setupDashboardRoutes(apiV1.Group("/dashboard", requireAuth), dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireAuth fiber.Handler, storage fiber.Storage) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(storage), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(storage), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Post("/logout-all", requireAuth, handler.LogoutAll)
	router.Get("/me", requireAuth, handler.Me)
	router.Put("/change-password", requireAuth, handler.ChangePassword)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", middleware.AdminOnly(), handler.ListUsers)
	router.Post("/", middleware.AdminOnly(), handler.CreateUser)
	router.Get("/:id", middleware.OwnerOrAdmin("id"), handler.GetUser)
	router.Put("/:id", middleware.OwnerOrAdmin("id"), handler.UpdateUser)
	router.Patch("/:id/role", middleware.AdminOnly(), handler.UpdateUserRole)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteUser)
}

// setupBranchRoutes configures branch routes
func setupBranchRoutes(router fiber.Router, handler *handlers.BranchHandler) {
	router.Get("/", middleware.CacheControl(time.Minute), handler.List)
	router.Get("/:id", middleware.CacheControl(time.Minute), handler.Get)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupTeamRoutes configures team routes
func setupTeamRoutes(router fiber.Router, handler *handlers.TeamHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Put("/:id/leader", middleware.AdminOnly(), handler.SetLeader)
	router.Post("/:id/members", middleware.TeamLeaderOrAdmin(), handler.AddMember)
	router.Delete("/:id/members/:userId", middleware.TeamLeaderOrAdmin(), handler.RemoveMember)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupGoalRoutes configures goal routes. Fixed segments come before /:id.
func setupGoalRoutes(router fiber.Router, handler *handlers.GoalHandler) {
	router.Get("/", handler.List)
	router.Get("/employee/:employeeId", middleware.OwnerOrAdmin("employeeId"), handler.ListByEmployee)
	router.Get("/team/:teamId", middleware.TeamLeaderOrAdmin(), handler.ListByTeam)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Patch("/:id/progress", handler.UpdateProgress)
	router.Delete("/:id", handler.Delete)
}

// setupReviewRoutes configures performance review routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler) {
	router.Get("/", handler.List)
	router.Get("/employee/:employeeId", handler.ListByEmployee)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Post("/:id/finalize", handler.Finalize)
	router.Delete("/:id", handler.Delete)
}

// setupPerformanceRoutes configures score aggregation routes
func setupPerformanceRoutes(router fiber.Router, handler *handlers.PerformanceHandler) {
	router.Get("/overview", middleware.AdminOnly(), handler.Overview)
	router.Get("/employee/:employeeId", handler.EmployeeScore)
	router.Get("/team/:teamId", middleware.TeamLeaderOrAdmin(), handler.TeamScore)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/stats", middleware.AdminOnly(), handler.GetStats)
	router.Get("/me", handler.GetMyDashboard)
}
