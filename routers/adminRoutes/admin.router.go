package adminRoutes

import (
	adminControllers "learnhub/controllers/admin"
	courseControllers "learnhub/controllers/course"
	"learnhub/middleware"
	adminValidators "learnhub/validators/admin"
	courseValidators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin console routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Ambassador program
	adminGroup.Get("/ambassador/applications", adminValidators.ApplicationList(), adminControllers.ListApplications)
	adminGroup.Patch("/ambassador/applications/:id/review", adminValidators.ReviewApplication(), adminControllers.ReviewApplication)
	adminGroup.Get("/ambassador/dashboard", adminControllers.ProgramDashboard)

	// Course management
	adminGroup.Post("/course/create", courseValidators.CreateCourse(), courseControllers.CreateCourse)
}
