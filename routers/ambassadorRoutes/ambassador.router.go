package ambassadorRoutes

import (
	controllers "learnhub/controllers/ambassador"
	"learnhub/middleware"
	validators "learnhub/validators/ambassador"

	"github.com/gofiber/fiber/v2"
)

// SetupAmbassadorRoutes sets up the ambassador program's user-facing routes
func SetupAmbassadorRoutes(app *fiber.App) {
	ambassadorGroup := app.Group("/ambassador")

	ambassadorGroup.Post("/apply", middleware.JWTMiddleware, validators.SubmitApplication(), controllers.SubmitApplication)
	ambassadorGroup.Get("/status", middleware.JWTMiddleware, controllers.GetApplicationStatus)
	ambassadorGroup.Post("/referral/link", middleware.JWTMiddleware, validators.GenerateLink(), controllers.GenerateReferralLink)
	ambassadorGroup.Get("/stats", middleware.JWTMiddleware, controllers.GetAmbassadorStats)
}
