package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is one score a rater leaves on another user's profile. At most one
// rating may exist per (rater, ratee) pair.
type Rating struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Rater      primitive.ObjectID `json:"rater" bson:"rater"`
	RaterModel Role               `json:"raterModel" bson:"raterModel"`
	Ratee      primitive.ObjectID `json:"ratee" bson:"ratee"`
	RateeModel Role               `json:"rateeModel" bson:"rateeModel"`
	Score      int                `json:"score" bson:"score"`
	Comment    string             `json:"comment" bson:"comment"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
