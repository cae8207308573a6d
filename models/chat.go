package models

import "time"

// ChatRecord is one question/answer exchange persisted to ChatHistory.
type ChatRecord struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Question  string    `bson:"question" json:"question"`
	Answer    string    `bson:"answer" json:"answer"`
	Context   string    `bson:"context" json:"context"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
