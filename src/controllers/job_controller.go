package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklink-app/Backend-Work-Link/src/lib"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// CreateJob creates a job posting. Recruiters only.
func CreateJob(c *fiber.Ctx) error {
	me := principal(c)
	if me.Identity.Role != models.RoleRecruiter {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Only recruiters can post jobs"))
	}

	var req struct {
		Title       string   `json:"title"`
		Company     string   `json:"company"`
		Location    string   `json:"location"`
		Description string   `json:"description"`
		Skills      []string `json:"skills"`
		SalaryMin   int      `json:"salaryMin"`
		SalaryMax   int      `json:"salaryMax"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if req.Title == "" || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Title and description are required"))
	}

	now := time.Now()
	job := models.Job{
		Id:          primitive.NewObjectID(),
		Recruiter:   me.Identity.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		Skills:      req.Skills,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      models.JobStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := lib.DB.Collection("jobs").InsertOne(c.Context(), job); err != nil {
		log.Printf("Error creating job: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create job"))
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// ListJobs returns open jobs, optionally filtered by a text query, newest
// first.
func ListJobs(c *fiber.Ctx) error {
	filter := bson.M{"status": models.JobStatusOpen}
	if q := c.Query("q"); q != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": q, "$options": "i"}},
			{"company": bson.M{"$regex": q, "$options": "i"}},
			{"skills": bson.M{"$regex": q, "$options": "i"}},
		}
	}
	if location := c.Query("location"); location != "" {
		filter["location"] = bson.M{"$regex": location, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := lib.DB.Collection("jobs").Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error finding jobs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	defer cursor.Close(c.Context())

	var jobs []models.Job
	if err := cursor.All(c.Context(), &jobs); err != nil {
		log.Printf("Error decoding jobs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return c.JSON(jobs)
}

// GetJobByID returns a single job posting.
func GetJobByID(c *fiber.Ctx) error {
	job, ferr := findJob(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}
	return c.JSON(job)
}

// CloseJob marks a job as closed. Only the posting recruiter may close it.
func CloseJob(c *fiber.Ctx) error {
	job, ferr := findJob(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	me := principal(c)
	if me.Identity.Role != models.RoleRecruiter || job.Recruiter != me.Identity.ID {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to close this job"))
	}

	_, err := lib.DB.Collection("jobs").UpdateOne(
		c.Context(),
		bson.M{"_id": job.Id},
		bson.M{"$set": bson.M{"status": models.JobStatusClosed, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("Error closing job: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to close job"))
	}
	return c.JSON(lib.MessageResponse("Job closed successfully"))
}

// ApplyToJob creates an application from the authenticated seeker. Applying
// twice to the same job is a conflict.
func ApplyToJob(c *fiber.Ctx) error {
	me := principal(c)
	if me.Identity.Role != models.RoleSeeker {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Only seekers can apply to jobs"))
	}

	job, ferr := findJob(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}
	if job.Status != models.JobStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This job is no longer open"))
	}

	var req struct {
		CoverNote string `json:"coverNote"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	applications := lib.DB.Collection("applications")
	count, err := applications.CountDocuments(c.Context(), bson.M{
		"job":    job.Id,
		"seeker": me.Identity.ID,
	})
	if err != nil {
		log.Printf("Error checking existing application: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(lib.MessageResponse("You have already applied to this job"))
	}

	now := time.Now()
	application := models.Application{
		Id:        primitive.NewObjectID(),
		Job:       job.Id,
		Seeker:    me.Identity.ID,
		CoverNote: req.CoverNote,
		Status:    models.ApplicationStatusApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := applications.InsertOne(c.Context(), application); err != nil {
		log.Printf("Error creating application: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to apply"))
	}

	createNotification(c, models.Notification{
		Recipient:        job.Recruiter,
		RecipientModel:   models.RoleRecruiter,
		Type:             models.NotificationApplicationReceived,
		RelatedUser:      me.Identity.ID,
		RelatedUserModel: me.Identity.Role,
		RelatedJob:       job.Id,
	})

	return c.Status(fiber.StatusCreated).JSON(application)
}

// GetJobApplicants lists applications for a job. Only the posting recruiter
// may see them.
func GetJobApplicants(c *fiber.Ctx) error {
	job, ferr := findJob(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	me := principal(c)
	if me.Identity.Role != models.RoleRecruiter || job.Recruiter != me.Identity.ID {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to view applicants"))
	}

	cursor, err := lib.DB.Collection("applications").Find(
		c.Context(),
		bson.M{"job": job.Id},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		log.Printf("Error finding applications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
	defer cursor.Close(c.Context())

	var apps []models.Application
	if err := cursor.All(c.Context(), &apps); err != nil {
		log.Printf("Error decoding applications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	type applicant struct {
		Application models.Application `json:"application"`
		Seeker      *models.UserDto    `json:"seeker,omitempty"`
	}
	applicants := make([]applicant, 0, len(apps))
	for _, app := range apps {
		row := applicant{Application: app}
		seeker := models.Identity{ID: app.Seeker, Role: models.RoleSeeker}
		if dto, err := lib.FindUserDto(c.Context(), seeker); err == nil {
			row.Seeker = dto
		}
		applicants = append(applicants, row)
	}
	return c.JSON(applicants)
}

// SaveJob toggles a job in the authenticated seeker's saved list.
func SaveJob(c *fiber.Ctx) error {
	me := principal(c)
	if me.Identity.Role != models.RoleSeeker {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Only seekers can save jobs"))
	}

	job, ferr := findJob(c)
	if ferr != nil {
		return c.Status(ferr.Code).JSON(lib.MessageResponse(ferr.Message))
	}

	seekers := lib.DB.Collection("seekers")
	var seeker models.Seeker
	if err := seekers.FindOne(c.Context(), bson.M{"_id": me.Identity.ID}).Decode(&seeker); err != nil {
		log.Printf("Error loading seeker: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	saved := false
	for _, id := range seeker.SavedJobs {
		if id == job.Id {
			saved = true
			break
		}
	}

	var update bson.M
	if saved {
		update = bson.M{"$pull": bson.M{"saved_jobs": job.Id}}
	} else {
		update = bson.M{"$addToSet": bson.M{"saved_jobs": job.Id}}
	}
	if _, err := seekers.UpdateOne(c.Context(), bson.M{"_id": me.Identity.ID}, update); err != nil {
		log.Printf("Error toggling saved job: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to save job"))
	}

	if saved {
		return c.JSON(lib.MessageResponse("Job removed from saved jobs"))
	}
	return c.JSON(lib.MessageResponse("Job saved"))
}

func findJob(c *fiber.Ctx) (*models.Job, *fiber.Error) {
	jobID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid job ID format")
	}

	var job models.Job
	err = lib.DB.Collection("jobs").FindOne(c.Context(), bson.M{"_id": jobID}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fiber.NewError(fiber.StatusNotFound, "Job not found")
		}
		log.Printf("Error finding job: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	return &job, nil
}
