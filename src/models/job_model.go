package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	Id          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Recruiter   primitive.ObjectID `json:"recruiter" bson:"recruiter"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	Location    string             `json:"location" bson:"location"`
	Description string             `json:"description" bson:"description"`
	Skills      []string           `json:"skills" bson:"skills"`
	SalaryMin   int                `json:"salaryMin,omitempty" bson:"salaryMin,omitempty"`
	SalaryMax   int                `json:"salaryMax,omitempty" bson:"salaryMax,omitempty"`
	Status      JobStatus          `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type Application struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Job       primitive.ObjectID `json:"job" bson:"job"`
	Seeker    primitive.ObjectID `json:"seeker" bson:"seeker"`
	CoverNote string             `json:"coverNote" bson:"coverNote"`
	Status    ApplicationStatus  `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "applied"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)
