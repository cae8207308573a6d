package models

// FAQ is a customer-support question/answer pair. AddedBy is "company"
// when submitted by an admin, "user" otherwise.
type FAQ struct {
	ID       string `bson:"_id" json:"id"`
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
	AddedBy  string `bson:"added_by" json:"added_by"`
}
