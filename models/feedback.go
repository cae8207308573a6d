package models

import "time"

// Feedback is a user rating with a free-form comment.
type Feedback struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Comment   string    `bson:"comment" json:"comment"`
	Rating    int       `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
