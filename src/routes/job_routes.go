package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/worklink-app/Backend-Work-Link/src/controllers"
	"github.com/worklink-app/Backend-Work-Link/src/middleware"
)

// JobRoutes sets up job board routes: posting, listing, applying, applicant
// review and save toggling.
func JobRoutes(app *fiber.App) {
	job := app.Group("/api/v1/jobs", middleware.ProtectRoute)

	job.Get("/", controllers.ListJobs)
	job.Post("/create", controllers.CreateJob)
	job.Get("/:id", controllers.GetJobByID)
	job.Put("/:id/close", controllers.CloseJob)
	job.Post("/:id/apply", controllers.ApplyToJob)
	job.Get("/:id/applicants", controllers.GetJobApplicants)
	job.Post("/:id/save", controllers.SaveJob)
}
