package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Seeker struct {
	Id             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"password,omitempty" bson:"password"`
	ProfilePicture string               `json:"profile_picture" bson:"profile_picture"`
	CoverPicture   string               `json:"cover_picture" bson:"cover_picture"`
	HeadLine       string               `json:"headline" bson:"headline"`
	About          string               `json:"about" bson:"about"`
	Location       string               `json:"location" bson:"location"`
	Skills         []string             `json:"skills" bson:"skills"`
	Experience     []Experience         `json:"experience" bson:"experience"`
	Education      []Education          `json:"education" bson:"education"`
	SavedJobs      []primitive.ObjectID `json:"saved_jobs" bson:"saved_jobs"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (s Seeker) Identity() Identity {
	return Identity{ID: s.Id, Role: RoleSeeker}
}

type Recruiter struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Username       string             `json:"username" bson:"username"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"password,omitempty" bson:"password"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	CoverPicture   string             `json:"cover_picture" bson:"cover_picture"`
	HeadLine       string             `json:"headline" bson:"headline"`
	About          string             `json:"about" bson:"about"`
	Location       string             `json:"location" bson:"location"`
	Company        string             `json:"company" bson:"company"`
	Website        string             `json:"website" bson:"website"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (r Recruiter) Identity() Identity {
	return Identity{ID: r.Id, Role: RoleRecruiter}
}

// UserDto is the trimmed profile shape embedded in feeds, conversation lists
// and notifications.
type UserDto struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Role           Role               `json:"role" bson:"role,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Username       string             `json:"username" bson:"username"`
	ProfilePicture string             `json:"profilePicture" bson:"profile_picture"`
	Headline       string             `json:"headline" bson:"headline,omitempty"`
}

type Experience struct {
	Title       string    `json:"title" bson:"title"`
	Company     string    `json:"company" bson:"company"`
	From        time.Time `json:"from" bson:"from"`
	To          time.Time `json:"to" bson:"to"`
	Description string    `json:"description" bson:"description"`
}

type Education struct {
	School string `json:"school" bson:"school"`
	Degree string `json:"degree" bson:"degree"`
	From   int    `json:"from" bson:"from"`
	To     int    `json:"to" bson:"to"`
}
